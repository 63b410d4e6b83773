package report

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/JulianB-Git/nicolash-frontend/internal/rabbit"
	"github.com/wb-go/wbf/zlog"
)

// maxStored caps the in-memory report log; older entries are dropped.
const maxStored = 50

// Sink consumes reports back off the queue into a small in-memory log the
// web app exposes for debugging.
type Sink struct {
	rmq    *rabbit.Client
	mu     sync.Mutex
	stored []Report
	done   chan struct{}
	cancel context.CancelFunc
}

func NewSink(rmq *rabbit.Client) *Sink {
	return &Sink{
		rmq:  rmq,
		done: make(chan struct{}),
	}
}

func (s *Sink) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	zlog.Logger.Info().Msg("report sink started")

	go func() {
		defer close(s.done)

		handler := func(body []byte) error {
			var r Report
			if err := json.Unmarshal(body, &r); err != nil {
				zlog.Logger.Error().
					Err(err).
					Msgf("failed to unmarshal report: %s", string(body))
				return err
			}
			s.add(r)
			return nil
		}

		if err := s.rmq.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming reports")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("report sink stopped by context")
	}()
}

func (s *Sink) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

func (s *Sink) add(r Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = append(s.stored, r)
	if len(s.stored) > maxStored {
		s.stored = s.stored[len(s.stored)-maxStored:]
	}
}

// Recent returns the stored reports, newest last.
func (s *Sink) Recent() []Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Report, len(s.stored))
	copy(out, s.stored)
	return out
}

// Clear empties the stored report log.
func (s *Sink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = nil
}
