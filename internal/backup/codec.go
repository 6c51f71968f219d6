package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"greenlight/internal/catalog"
)

// codecVersion guards the snapshot wire format. Bump it when the envelope or
// the entity shapes change incompatibly.
const codecVersion = 1

// envelope is the versioned serialization of a captured store.
type envelope struct {
	Version     int                 `json:"version"`
	CapturedAt  time.Time           `json:"captured_at"`
	Collections catalog.Collections `json:"collections"`
}

// encodeSnapshot serializes the captured collections.
func encodeSnapshot(c catalog.Collections, capturedAt time.Time) ([]byte, error) {
	payload, err := json.Marshal(envelope{
		Version:     codecVersion,
		CapturedAt:  capturedAt,
		Collections: c,
	})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return payload, nil
}

// decodeSnapshot parses a snapshot payload, rejecting unknown versions.
func decodeSnapshot(payload []byte) (catalog.Collections, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return catalog.Collections{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if env.Version != codecVersion {
		return catalog.Collections{}, fmt.Errorf("unsupported snapshot version %d", env.Version)
	}
	return env.Collections, nil
}
