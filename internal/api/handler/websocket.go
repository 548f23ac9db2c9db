// internal/api/handler/websocket.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"trustpanel-registration/internal/domain/registration"
	"trustpanel-registration/internal/metrics"
)

const (
	writeWait = 5 * time.Second

	// NotificationTTL is how long clients keep a toast on screen.
	NotificationTTL = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// Event is a user action sent by the browser.
type Event struct {
	Type  string             `json:"type" validate:"required,oneof=input blur next back finish login"`
	Field registration.Field `json:"field" validate:"required_if=Type input,required_if=Type blur"`
	Value string             `json:"value"`
}

// Frame is a message pushed to the browser.
type Frame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type fieldStateData struct {
	Field   registration.Field      `json:"field"`
	State   registration.FieldState `json:"state"`
	Message string                  `json:"message,omitempty"`
}

type notificationData struct {
	Kind    registration.NotificationKind `json:"kind"`
	Message string                        `json:"message"`
	TTLms   int64                         `json:"ttlMs"`
}

type WizardOptions struct {
	LoginURL   string
	LoginDelay time.Duration
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

// WizardHandler runs one registration wizard per websocket connection.
type WizardHandler struct {
	submitter registration.Submitter
	validator registration.Validator
	opts      WizardOptions
}

func NewWizardHandler(s registration.Submitter, v registration.Validator, opts WizardOptions) *WizardHandler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &WizardHandler{
		submitter: s,
		validator: v,
		opts:      opts,
	}
}

func (h *WizardHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.opts.Logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	logger := h.opts.Logger.With("session", uuid.NewString())
	surface := newSocketSurface(conn, logger, h.opts.LoginURL)
	wizard := registration.NewWizard(surface, h.submitter,
		registration.WithNotifier(surface),
		registration.WithLoginNavigator(surface),
		registration.WithLoginDelay(h.opts.LoginDelay),
		registration.WithLogger(logger),
		registration.WithMetrics(h.opts.Metrics),
	)
	defer wizard.Close()

	h.opts.Metrics.SessionOpened()
	defer h.opts.Metrics.SessionClosed()
	logger.Info("wizard session opened")

	wizard.Start()

	ctx := r.Context()
	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("wizard session read failed", "error", err)
			}
			logger.Info("wizard session closed")
			return
		}

		var ev Event
		if err := json.Unmarshal(p, &ev); err != nil {
			surface.sendError("invalid message")
			continue
		}
		if err := h.validator.Validate(&ev); err != nil {
			surface.sendError(err.Error())
			continue
		}
		if err := dispatch(ctx, wizard, ev); err != nil {
			surface.sendError(eventErrorMessage(err))
		}
	}
}

func dispatch(ctx context.Context, wizard *registration.Wizard, ev Event) error {
	switch ev.Type {
	case "input":
		return wizard.Input(ev.Field, ev.Value)
	case "blur":
		_, err := wizard.Blur(ev.Field)
		return err
	case "next":
		return wizard.Next(ctx)
	case "back":
		return wizard.Back()
	case "finish":
		_, err := wizard.Finish(ctx)
		return err
	case "login":
		return wizard.GoToLogin()
	default:
		return errors.New("unsupported event " + ev.Type)
	}
}

func eventErrorMessage(err error) string {
	switch {
	case errors.Is(err, registration.ErrStepInvalid):
		return "Please fix the highlighted fields"
	case errors.Is(err, registration.ErrSubmissionInFlight):
		return "Please wait, your registration is being submitted"
	default:
		return err.Error()
	}
}

// socketSurface draws wizard state by pushing frames. Writes are serialised
// because gorilla connections allow one concurrent writer.
type socketSurface struct {
	mu       sync.Mutex
	conn     *websocket.Conn
	logger   *slog.Logger
	loginURL string
}

func newSocketSurface(conn *websocket.Conn, logger *slog.Logger, loginURL string) *socketSurface {
	return &socketSurface{conn: conn, logger: logger, loginURL: loginURL}
}

func (s *socketSurface) send(f Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(f); err != nil {
		s.logger.Debug("frame dropped", "type", f.Type, "error", err)
	}
}

func (s *socketSurface) SetFieldState(field registration.Field, state registration.FieldState, message string) {
	s.send(Frame{Type: "field_state", Data: fieldStateData{Field: field, State: state, Message: message}})
}

func (s *socketSurface) SetPasswordStrength(strength registration.PasswordStrength) {
	s.send(Frame{Type: "strength", Data: strength})
}

func (s *socketSurface) ShowStep(step registration.Step) {
	s.send(Frame{Type: "step", Data: map[string]interface{}{"step": int(step), "name": step.String()}})
}

func (s *socketSurface) SetBusy(busy bool) {
	s.send(Frame{Type: "busy", Data: map[string]bool{"busy": busy}})
}

func (s *socketSurface) ShowConfirmation(c registration.Confirmation) {
	s.send(Frame{Type: "confirmation", Data: c})
}

func (s *socketSurface) Notify(message string, kind registration.NotificationKind) {
	s.send(Frame{Type: "notification", Data: notificationData{
		Kind:    kind,
		Message: message,
		TTLms:   NotificationTTL.Milliseconds(),
	}})
}

func (s *socketSurface) GoToLogin() {
	s.send(Frame{Type: "navigate", Data: map[string]string{"url": s.loginURL}})
}

func (s *socketSurface) sendError(message string) {
	s.send(Frame{Type: "error", Data: map[string]string{"message": message}})
}
