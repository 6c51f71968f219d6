package audit

import "context"

// Sink receives a copy of every recorded entry. Sinks are best-effort: a
// failing sink never blocks or fails the mutation that produced the entry.
type Sink interface {
	Append(ctx context.Context, entry Entry) error
}
