package audit

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Log is the append-only, time-ordered record of every mutation. Appends are
// serialized by a single writer lock so entries from sequential mutations keep
// their relative order. Entries live in memory for the process lifetime;
// optional sinks (postgres, brokers) receive best-effort copies through a
// bounded channel.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	nextSeq uint64

	outbox  chan Entry
	logger  *slog.Logger
	observe func()
}

// Option configures a Log.
type Option func(*Log)

// WithLogger attaches a structured logger for sink backpressure warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) { l.logger = logger }
}

// WithOutbox sizes the sink channel. The default is 256.
func WithOutbox(size int) Option {
	return func(l *Log) { l.outbox = make(chan Entry, size) }
}

// WithObserver registers a hook invoked once per recorded entry.
func WithObserver(fn func()) Option {
	return func(l *Log) { l.observe = fn }
}

// NewLog constructs an empty audit log.
func NewLog(opts ...Option) *Log {
	l := &Log{
		outbox: make(chan Entry, 256),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append assigns an ID and timestamp, records the entry, and offers a copy to
// the sink channel. It never fails under normal operation.
func (l *Log) Append(ctx context.Context, entry Entry) Entry {
	l.mu.Lock()
	entry.ID = uuid.NewString()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	entry.seq = l.nextSeq
	l.nextSeq++
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	if l.observe != nil {
		l.observe()
	}

	select {
	case l.outbox <- entry:
	default:
		// Sinks are best-effort; the in-memory trail stays authoritative.
		l.logger.WarnContext(ctx, "audit outbox full, dropping sink copy",
			"action", entry.Action,
		)
	}
	return entry
}

// Len reports the number of recorded entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Query returns entries matching the filter, most recent first. Entries with
// equal timestamps keep append order (newest append first).
func (l *Log) Query(_ context.Context, filter Filter) []Entry {
	l.mu.RLock()
	matched := make([]Entry, 0, len(l.entries))
	for _, entry := range l.entries {
		if matches(entry, filter) {
			matched = append(matched, entry)
		}
	}
	l.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].seq > matched[j].seq
	})
	return matched
}

// Outbox exposes the sink channel for the worker to consume.
func (l *Log) Outbox() <-chan Entry {
	return l.outbox
}

func matches(entry Entry, filter Filter) bool {
	if filter.ResourceType != "" && entry.ResourceType != filter.ResourceType {
		return false
	}
	if filter.ActorID != "" && entry.ActorID != filter.ActorID {
		return false
	}
	if !filter.From.IsZero() && entry.Timestamp.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && entry.Timestamp.After(filter.To) {
		return false
	}
	if filter.Text != "" {
		needle := strings.ToLower(filter.Text)
		if !strings.Contains(strings.ToLower(entry.Action), needle) &&
			!strings.Contains(strings.ToLower(entry.Details), needle) {
			return false
		}
	}
	return true
}
