package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []Entry
	err     error
}

func (s *recordingSink) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func TestWorkerForwardsEntries(t *testing.T) {
	l := NewLog()
	sink := &recordingSink{}
	worker := NewWorker(sink, l.Outbox(), slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	l.Append(ctx, Entry{Action: "first"})
	l.Append(ctx, Entry{Action: "second"})

	require.Eventually(t, func() bool { return sink.count() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWorkerSurvivesSinkFailures(t *testing.T) {
	l := NewLog()
	sink := &recordingSink{err: errors.New("db down")}
	worker := NewWorker(sink, l.Outbox(), slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	l.Append(ctx, Entry{Action: "lost downstream"})

	// Recover the sink; later entries still flow.
	sink.mu.Lock()
	sink.err = nil
	sink.mu.Unlock()

	l.Append(ctx, Entry{Action: "delivered"})
	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
}
