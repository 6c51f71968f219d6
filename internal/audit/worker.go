package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit entries from the log's outbox and forwards them to a
// sink. It keeps background persistence testable without wiring queue
// implementations into the mutation path.
type Worker struct {
	sink   Sink
	inbox  <-chan Entry
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Entry, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run forwards entries until the context is cancelled. Sink failures are
// logged and skipped; the in-memory log already holds the entry.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry := <-w.inbox:
			if err := w.sink.Append(ctx, entry); err != nil {
				w.logger.ErrorContext(ctx, "audit sink append failed",
					"action", entry.Action,
					"error", err,
				)
			}
		}
	}
}
