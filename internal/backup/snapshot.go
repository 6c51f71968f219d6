package backup

import "time"

// Status tracks a snapshot through its lifecycle. in-progress is the only
// non-terminal state; completed and failed never transition again.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Snapshot describes one point-in-time capture of every entity collection.
// The captured payload itself lives in the archive, keyed by snapshot ID.
type Snapshot struct {
	ID        string
	Name      string
	Size      int64
	Status    Status
	CreatedAt time.Time
}
