package quiz

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultAdvanceDelay is the pause between feedback and the next question.
const DefaultAdvanceDelay = 800 * time.Millisecond

var (
	ErrNoRecords   = errors.New("no records loaded")
	ErrNoSelection = errors.New("no answer selected")
	ErrNotAwaiting = errors.New("question already evaluated")
	ErrNoQuestion  = errors.New("no active question")
	ErrClosed      = errors.New("session closed")
)

// Phase is the position in the per-question cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingSelection
	PhaseEvaluated
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSelection:
		return "awaiting_selection"
	case PhaseEvaluated:
		return "evaluated"
	default:
		return "idle"
	}
}

// Options configures a Controller. Zero values fall back to defaults.
type Options struct {
	NumChoices   int
	AdvanceDelay time.Duration
	Rand         Rand
	Scheduler    Scheduler
	Notifier     Notifier
	Renderer     Renderer
}

// Outcome describes an evaluated answer.
type Outcome struct {
	Correct  bool   `json:"correct"`
	Expected string `json:"expected"`
	Chosen   string `json:"chosen"`
}

// Controller owns one quiz session: pool, generator, tallies and the current
// question. All methods are safe for concurrent use; scheduled advances and
// user events are serialized on the controller lock.
type Controller struct {
	mu sync.Mutex

	pool    *Pool
	gen     *Generator
	session Session

	current  *Question
	number   int // 1-based position of current, fixed when issued
	phase    Phase
	epoch    uint64
	feedback string
	tone     Tone
	closed   bool

	delay    time.Duration
	sched    Scheduler
	notifier Notifier
	renderer Renderer
}

// NewController builds a controller over records. Call Start to issue the
// first question.
func NewController(records []Record, opts Options) (*Controller, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(0)
	}
	delay := opts.AdvanceDelay
	if delay <= 0 {
		delay = DefaultAdvanceDelay
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = TimerScheduler{}
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = RendererFunc(func(View) {})
	}

	return &Controller{
		pool:     NewPool(records, rng),
		gen:      NewGenerator(records, opts.NumChoices, rng),
		tone:     ToneNeutral,
		delay:    delay,
		sched:    sched,
		notifier: notifier,
		renderer: renderer,
	}, nil
}

// Start shuffles a fresh pool and issues the first question.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.pool.Reset()
	return c.nextLocked()
}

// Submit evaluates choice against the current question.
func (c *Controller) Submit(choice string) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkAwaitingLocked(); err != nil {
		return Outcome{}, err
	}
	if choice == "" {
		c.notifier.Notify(Notice{Kind: NoticeNoSelection, Message: MessageNoSelection})
		return Outcome{}, ErrNoSelection
	}

	q := c.current
	correct := c.session.RecordAnswer(q.Record.Street, q.Correct, choice)
	if correct {
		c.setFeedback(FeedbackCorrect, ToneCorrect)
	} else {
		c.setFeedback(fmt.Sprintf(FeedbackIncorrect, q.Correct), ToneIncorrect)
	}
	c.phase = PhaseEvaluated
	c.renderLocked()
	c.scheduleAdvanceLocked()

	return Outcome{Correct: correct, Expected: q.Correct, Chosen: choice}, nil
}

// Skip logs the current question as skipped without touching score or total.
func (c *Controller) Skip() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkAwaitingLocked(); err != nil {
		return err
	}

	q := c.current
	c.session.RecordSkip(q.Record.Street, q.Correct)
	c.setFeedback(FeedbackSkipped, ToneSkipped)
	c.phase = PhaseEvaluated
	c.renderLocked()
	c.scheduleAdvanceLocked()
	return nil
}

// Finish delivers the recap to the notifier and returns it. The session keeps running.
func (c *Controller) Finish() Recap {
	c.mu.Lock()
	defer c.mu.Unlock()

	recap := c.session.Recap()
	c.notifier.Notify(Notice{Kind: NoticeRecap, Message: recap.Text, Recap: &recap})
	return recap
}

// Restart zeroes the tallies, reshuffles the pool and issues a question
// immediately. Any advance still pending from before becomes a no-op.
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	c.session.Reset()
	c.pool.Reset()
	return c.nextLocked()
}

// Close stops the controller; later calls and pending advances do nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Session returns a copy of the current tallies.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.clone()
}

// Current returns the active question, if any.
func (c *Controller) Current() (Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Question{}, false
	}
	return *c.current, true
}

// Phase reports the position in the question cycle.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// View returns what the display should currently show.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) checkAwaitingLocked() error {
	switch {
	case c.closed:
		return ErrClosed
	case c.current == nil:
		return ErrNoQuestion
	case c.phase != PhaseAwaitingSelection:
		return ErrNotAwaiting
	}
	return nil
}

func (c *Controller) nextLocked() error {
	rec, reshuffled, err := c.pool.Next()
	if err != nil {
		return err
	}
	if reshuffled {
		c.notifier.Notify(Notice{Kind: NoticeReshuffle, Message: MessageReshuffle})
	}

	q := c.gen.Build(rec)
	c.current = &q
	c.number = c.session.Answered + 1
	c.phase = PhaseAwaitingSelection
	c.epoch++
	c.setFeedback("", ToneNeutral)
	c.renderLocked()
	return nil
}

func (c *Controller) scheduleAdvanceLocked() {
	epoch := c.epoch
	c.sched.After(c.delay, func() {
		c.advance(epoch)
	})
}

func (c *Controller) advance(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || epoch != c.epoch || c.phase != PhaseEvaluated {
		return
	}
	// pool.Next only fails on an empty record set, which NewController rejects.
	_ = c.nextLocked()
}

func (c *Controller) setFeedback(text string, tone Tone) {
	c.feedback = text
	c.tone = tone
}

func (c *Controller) renderLocked() {
	c.renderer.Render(c.viewLocked())
}

func (c *Controller) viewLocked() View {
	v := View{
		Count:     countText(c.number, c.pool.Size()),
		Choices:   []string{},
		Feedback:  c.feedback,
		Tone:      c.tone,
		Score:     scoreText(c.session.Score, c.session.Total),
		Remaining: remainingText(c.pool.Remaining()),
		Disabled:  c.phase != PhaseAwaitingSelection,
	}
	if c.current != nil {
		v.Question = c.current.Prompt
		v.Choices = append(v.Choices, c.current.Choices...)
	}
	return v
}
