package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Registers the postgres driver for the optional durable sink.
	_ "github.com/lib/pq"
)

// PostgresSink persists audit entries to a postgres table for retention beyond
// the process lifetime. It is fed by the outbox worker, never by the mutation
// path directly.
type PostgresSink struct {
	db *sql.DB
}

// OpenPostgresSink connects to postgres and verifies the connection.
func OpenPostgresSink(dsn string) (*PostgresSink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping audit database: %w", err)
	}
	return &PostgresSink{db: db}, nil
}

// NewPostgresSink wraps an existing connection, mainly for tests.
func NewPostgresSink(db *sql.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

// Append inserts one entry. Entries are immutable, so this is the only write
// the sink ever issues.
func (s *PostgresSink) Append(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO audit_entries (id, action, actor_id, actor_name, resource_type, resource_id, details, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.Action,
		entry.ActorID,
		entry.ActorName,
		string(entry.ResourceType),
		entry.ResourceID,
		entry.Details,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresSink) Close() error {
	return s.db.Close()
}
