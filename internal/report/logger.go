package report

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Publisher delivers an encoded report to the collecting queue. Satisfied
// by rabbit.Client.
type Publisher interface {
	Publish(message []byte) error
}

// Logger writes every report to the structured log and forwards it to the
// report queue best-effort. Forwarding never blocks the caller: reports are
// dropped when the buffer is full, and a nil Publisher disables forwarding
// entirely.
type Logger struct {
	sessionID string
	log       *zerolog.Logger
	queue     chan Report
	done      chan struct{}
}

const queueDepth = 64

func NewLogger(log *zerolog.Logger, pub Publisher) *Logger {
	l := &Logger{
		sessionID: newID("session"),
		log:       log,
		queue:     make(chan Report, queueDepth),
		done:      make(chan struct{}),
	}
	go l.forward(pub)
	return l
}

// ReportAPIError records a failed backend call with enough context to
// correlate it (endpoint, method, status).
func (l *Logger) ReportAPIError(err error, method, endpoint string, status int) {
	l.submit(Report{
		Level:     LevelError,
		Component: "api client",
		Action:    method + " " + endpoint,
		Message:   err.Error(),
		Status:    status,
	})
}

// ReportFormError records a rejected form field.
func (l *Logger) ReportFormError(form, field, message string) {
	l.submit(Report{
		Level:     LevelWarning,
		Component: "form validation",
		Action:    form,
		Message:   message,
		Data:      map[string]any{"field": field},
	})
}

// ReportAuthError records a failure while dealing with the identity
// provider.
func (l *Logger) ReportAuthError(action string, err error) {
	l.submit(Report{
		Level:     LevelError,
		Component: "authentication",
		Action:    action,
		Message:   err.Error(),
	})
}

func (l *Logger) submit(r Report) {
	r.ID = newID("err")
	r.Timestamp = time.Now().UTC()
	r.SessionID = l.sessionID

	event := l.log.Error()
	switch r.Level {
	case LevelWarning:
		event = l.log.Warn()
	case LevelInfo:
		event = l.log.Info()
	}
	event.
		Str("report_id", r.ID).
		Str("component", r.Component).
		Str("action", r.Action).
		Int("status", r.Status).
		Msg(r.Message)

	select {
	case l.queue <- r:
	default:
		l.log.Debug().Str("report_id", r.ID).Msg("report buffer full, dropping")
	}
}

func (l *Logger) forward(pub Publisher) {
	defer close(l.done)
	for r := range l.queue {
		if pub == nil {
			continue
		}
		payload, err := json.Marshal(r)
		if err != nil {
			l.log.Warn().Err(err).Msg("failed to encode report")
			continue
		}
		// Best-effort; Publish already logs its own failures.
		_ = pub.Publish(payload)
	}
}

// Close drains the buffer and stops the forwarding goroutine.
func (l *Logger) Close() {
	close(l.queue)
	<-l.done
}
