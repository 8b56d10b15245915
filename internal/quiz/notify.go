package quiz

import (
	"sync"
	"time"
)

// NoticeKind classifies user-facing notices.
type NoticeKind string

const (
	NoticeReshuffle   NoticeKind = "reshuffle"
	NoticeNoSelection NoticeKind = "no_selection"
	NoticeRecap       NoticeKind = "recap"
)

// User-visible notice texts.
const (
	MessageReshuffle   = "All questions complete. Reshuffling."
	MessageNoSelection = "Please choose an answer."
	MessageLoadFailed  = "Failed to load quiz data."
)

// Notice is something the user must acknowledge (the browser shows it as a dialog).
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	Recap   *Recap     `json:"recap,omitempty"`
}

// Notifier delivers notices. Implementations must not block: the controller
// calls them while holding its lock.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Scheduler runs fn once after d. There is no cancellation.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TimerScheduler schedules on real time.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// ManualScheduler queues tasks until RunPending is called.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []scheduledTask
}

type scheduledTask struct {
	delay time.Duration
	fn    func()
}

func (m *ManualScheduler) After(d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, scheduledTask{delay: d, fn: fn})
}

// Pending is the number of queued tasks.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Delays lists the delays of the queued tasks.
func (m *ManualScheduler) Delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.pending))
	for i, t := range m.pending {
		out[i] = t.delay
	}
	return out
}

// RunPending fires every task queued so far and returns how many ran.
// Tasks scheduled while running stay queued.
func (m *ManualScheduler) RunPending() int {
	m.mu.Lock()
	tasks := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, t := range tasks {
		t.fn()
	}
	return len(tasks)
}
