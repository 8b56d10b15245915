package play

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/district-quiz/internal/loader"
	"github.com/gokatarajesh/district-quiz/internal/metrics"
	"github.com/gokatarajesh/district-quiz/internal/quiz"
	httperrors "github.com/gokatarajesh/district-quiz/pkg/http/errors"
	ws "github.com/gokatarajesh/district-quiz/pkg/http/ws"
)

// Options tunes every session a Handler creates.
type Options struct {
	NumChoices   int
	AdvanceDelay time.Duration
	// Seed fixes the shuffle order of every session; 0 seeds from the clock.
	Seed int64
	// Scheduler overrides the advance timer; nil uses real timers.
	Scheduler quiz.Scheduler
}

// Handler runs one quiz session per WebSocket connection.
type Handler struct {
	catalog  *loader.Catalog
	hub      *ws.Hub
	metrics  *metrics.Metrics
	opts     Options
	upgrader *websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a quiz WebSocket handler.
func NewHandler(catalog *loader.Catalog, hub *ws.Hub, m *metrics.Metrics, opts Options, upgrader *websocket.Upgrader, logger zerolog.Logger) *Handler {
	if upgrader == nil {
		upgrader = &websocket.Upgrader{}
	}
	return &Handler{
		catalog:  catalog,
		hub:      hub,
		metrics:  m,
		opts:     opts,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "quiz_ws").Logger(),
	}
}

// HandleWebSocket upgrades the request and serves a session until the peer leaves.
// Route: GET /ws/quiz
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	h.HandleConnection(conn)
}

// HandleConnection processes a new WebSocket connection. It blocks until the
// connection closes.
func (h *Handler) HandleConnection(conn *websocket.Conn) {
	id := uuid.New()
	logger := h.logger.With().Str("session_id", id.String()).Logger()

	s := &session{
		id:      id,
		hub:     h.hub,
		conn:    ws.NewConnection(conn, logger),
		metrics: h.metrics,
		logger:  logger,
	}
	h.hub.Register(id, s.conn)
	h.metrics.ActiveSessions.Inc()
	defer func() {
		if s.ctrl != nil {
			s.ctrl.Close()
		}
		h.hub.Unregister(id)
		h.metrics.ActiveSessions.Dec()
	}()

	go s.conn.WritePump()

	snap := h.catalog.Snapshot()
	s.send(ws.TypeSessionStarted, ws.SessionStartedPayload{
		SessionID:   id.String(),
		RecordCount: len(snap.Records),
	}, "")
	h.start(s, snap)

	s.conn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(s, msg)
	})
}

func (h *Handler) start(s *session, snap loader.Snapshot) {
	if !snap.Ready() {
		s.logger.Warn().Err(snap.Err).Msg("quiz data unavailable")
		h.renderFailure(s)
		return
	}

	ctrl, err := quiz.NewController(snap.Records, quiz.Options{
		NumChoices:   h.opts.NumChoices,
		AdvanceDelay: h.opts.AdvanceDelay,
		Rand:         quiz.NewRand(h.opts.Seed),
		Scheduler:    h.opts.Scheduler,
		Notifier:     s,
		Renderer:     s,
	})
	if err == nil {
		err = ctrl.Start()
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to start quiz session")
		h.renderFailure(s)
		return
	}
	s.ctrl = ctrl
	s.logger.Info().Int("records", len(snap.Records)).Msg("quiz session started")
}

// renderFailure replaces the question with the load failure text. Commands
// are answered with data_unavailable.
func (h *Handler) renderFailure(s *session) {
	s.Render(quiz.FailureView())
}

// handleMessage routes incoming WebSocket messages.
func (h *Handler) handleMessage(s *session, msg ws.Message) error {
	if msg.Type == ws.TypePing {
		s.send(ws.TypePong, nil, msg.RequestID)
		return nil
	}

	switch msg.Type {
	case ws.TypeSubmitAnswer, ws.TypeSkipQuestion, ws.TypeFinishQuiz, ws.TypeRestartQuiz:
	default:
		return s.sendError(httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type), msg.RequestID)
	}

	if s.ctrl == nil {
		return s.sendError(httperrors.ErrCodeDataUnavailable, quiz.MessageLoadFailed, msg.RequestID)
	}

	switch msg.Type {
	case ws.TypeSubmitAnswer:
		return h.handleSubmitAnswer(s, msg)
	case ws.TypeSkipQuestion:
		if err := s.ctrl.Skip(); err != nil {
			return h.sendQuizError(s, err, msg.RequestID)
		}
		h.metrics.Skips.Inc()
	case ws.TypeFinishQuiz:
		recap := s.ctrl.Finish()
		h.metrics.Finishes.Inc()
		s.logger.Info().Int("score", recap.Score).Int("total", recap.Total).Msg("recap requested")
	case ws.TypeRestartQuiz:
		if err := s.ctrl.Restart(); err != nil {
			return h.sendQuizError(s, err, msg.RequestID)
		}
		h.metrics.Restarts.Inc()
	}
	return nil
}

func (h *Handler) handleSubmitAnswer(s *session, msg ws.Message) error {
	var req ws.SubmitAnswerPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return s.sendError(httperrors.ErrCodeInvalidPayload, "Invalid submit_answer payload", msg.RequestID)
		}
	}

	out, err := s.ctrl.Submit(req.Choice)
	if err != nil {
		return h.sendQuizError(s, err, msg.RequestID)
	}
	h.metrics.ObserveAnswer(out.Correct)
	return nil
}

// sendQuizError maps controller errors onto wire codes.
func (h *Handler) sendQuizError(s *session, err error, requestID string) error {
	switch {
	case errors.Is(err, quiz.ErrNoSelection):
		// follows the notice the controller already raised
		return s.sendError(httperrors.ErrCodeNoSelection, quiz.MessageNoSelection, requestID)
	case errors.Is(err, quiz.ErrNotAwaiting):
		return s.sendError(httperrors.ErrCodeNotAwaiting, "Answer already evaluated", requestID)
	case errors.Is(err, quiz.ErrNoQuestion):
		return s.sendError(httperrors.ErrCodeNoQuestion, "No active question", requestID)
	case errors.Is(err, quiz.ErrClosed):
		return s.sendError(httperrors.ErrCodeSessionClosed, "Session is closed", requestID)
	default:
		s.logger.Error().Err(err).Msg("quiz command failed")
		return s.sendError(httperrors.ErrCodeInternalError, "Internal error", requestID)
	}
}
