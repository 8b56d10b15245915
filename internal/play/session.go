package play

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/district-quiz/internal/metrics"
	"github.com/gokatarajesh/district-quiz/internal/quiz"
	ws "github.com/gokatarajesh/district-quiz/pkg/http/ws"
)

// session is one browser tab. It renders controller output onto the socket.
type session struct {
	id      uuid.UUID
	hub     *ws.Hub
	conn    *ws.Connection
	ctrl    *quiz.Controller // nil when the record set is unavailable
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

var (
	_ quiz.Renderer = (*session)(nil)
	_ quiz.Notifier = (*session)(nil)
)

func (s *session) Render(v quiz.View) {
	s.send(ws.TypeViewUpdate, viewPayload(v), "")
}

func (s *session) Notify(n quiz.Notice) {
	switch n.Kind {
	case quiz.NoticeRecap:
		if n.Recap != nil {
			s.send(ws.TypeRecap, recapPayload(*n.Recap), "")
			return
		}
	case quiz.NoticeReshuffle:
		s.metrics.Reshuffles.Inc()
	}
	s.send(ws.TypeNotice, ws.NoticePayload{Kind: string(n.Kind), Message: n.Message}, "")
}

func (s *session) send(msgType string, payload any, requestID string) {
	msg, err := ws.NewMessage(msgType, payload)
	if err != nil {
		s.logger.Error().Err(err).Str("type", msgType).Msg("failed to marshal ws payload")
		return
	}
	msg.RequestID = requestID
	if err := s.hub.SendTo(s.id, msg); err != nil {
		s.logger.Warn().Err(err).Str("type", msgType).Msg("failed to queue ws message")
	}
}

func (s *session) sendError(code, message, requestID string) error {
	s.send(ws.TypeError, ws.ErrorPayload{Code: code, Message: message}, requestID)
	return nil
}

func viewPayload(v quiz.View) ws.ViewUpdatePayload {
	choices := v.Choices
	if choices == nil {
		choices = []string{}
	}
	return ws.ViewUpdatePayload{
		Question:  v.Question,
		Count:     v.Count,
		Choices:   choices,
		Feedback:  v.Feedback,
		Tone:      string(v.Tone),
		Score:     v.Score,
		Remaining: v.Remaining,
		Disabled:  v.Disabled,
	}
}

func recapPayload(r quiz.Recap) ws.RecapPayload {
	out := ws.RecapPayload{
		Score:   r.Score,
		Total:   r.Total,
		Percent: r.Percent,
		Missed:  make([]ws.MissedEntry, len(r.Missed)),
		Skipped: make([]ws.SkippedEntry, len(r.Skipped)),
		Text:    r.Text,
	}
	for i, m := range r.Missed {
		out.Missed[i] = ws.MissedEntry{Street: m.Street, Correct: m.Correct, Chosen: m.Chosen}
	}
	for i, sk := range r.Skipped {
		out.Skipped[i] = ws.SkippedEntry{Street: sk.Street, Districts: sk.Districts}
	}
	return out
}
