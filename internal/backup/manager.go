package backup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"greenlight/internal/audit"
	"greenlight/internal/catalog"
	"greenlight/pkg/apperrors"
	"greenlight/pkg/requestcontext"
	"greenlight/pkg/sentinel"
)

// Observer receives terminal backup/restore outcomes. Satisfied by the
// platform metrics registry.
type Observer interface {
	ObserveBackup(outcome string)
	ObserveRestore(outcome string)
}

type noopObserver struct{}

func (noopObserver) ObserveBackup(string)  {}
func (noopObserver) ObserveRestore(string) {}

// Manager coordinates whole-store snapshot and restore as a two-phase
// asynchronous process. Create registers an in-progress snapshot and captures
// the store in the background; Restore takes the store's restore gate so no
// mutation can interleave with the data replacement, and is single-flight.
type Manager struct {
	store   *catalog.Store
	log     *audit.Log
	archive Archive

	observer Observer
	logger   *slog.Logger
	delay    time.Duration
	timeout  time.Duration

	mu        sync.RWMutex
	snapshots map[string]Snapshot
	order     []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithObserver attaches an outcome metrics observer.
func WithObserver(observer Observer) Option {
	return func(m *Manager) { m.observer = observer }
}

// WithDelay sets the simulated durability latency. Tests run with zero.
func WithDelay(delay time.Duration) Option {
	return func(m *Manager) { m.delay = delay }
}

// WithTimeout bounds each background capture/restore. The default is one
// minute.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Manager) { m.timeout = timeout }
}

// NewManager wires the store, audit log and archive backend together.
func NewManager(store *catalog.Store, log *audit.Log, archive Archive, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		log:       log,
		archive:   archive,
		observer:  noopObserver{},
		logger:    slog.Default(),
		timeout:   time.Minute,
		snapshots: make(map[string]Snapshot),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create registers an in-progress snapshot and returns it immediately; the
// capture itself runs in the background. Callers observe the outcome through
// List or the audit trail. Concurrent creates are allowed.
func (m *Manager) Create(ctx context.Context) (Snapshot, error) {
	actor, ok := requestcontext.Actor(ctx)
	if !ok {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeUnauthorized,
			"backup requires an authenticated actor", sentinel.ErrUnauthenticated)
	}

	now := requestcontext.Now(ctx).UTC()
	snapshot := Snapshot{
		ID:        uuid.NewString(),
		Name:      "Backup " + now.Format("2006-01-02 15:04:05"),
		Status:    StatusInProgress,
		CreatedAt: now,
	}

	m.mu.Lock()
	m.snapshots[snapshot.ID] = snapshot
	m.order = append(m.order, snapshot.ID)
	m.mu.Unlock()

	m.record(ctx, actor, audit.ActionBackupStarted, snapshot)

	// Detach from the request so an early client disconnect cannot abort a
	// capture that was already announced.
	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	go func() {
		defer cancel()
		m.runBackup(bgCtx, actor, snapshot)
	}()

	return snapshot, nil
}

func (m *Manager) runBackup(ctx context.Context, actor requestcontext.ActorInfo, snapshot Snapshot) {
	if err := m.wait(ctx); err != nil {
		m.failBackup(ctx, actor, snapshot, err)
		return
	}

	captured := m.store.ExportCollections()
	payload, err := encodeSnapshot(captured, snapshot.CreatedAt)
	if err != nil {
		m.failBackup(ctx, actor, snapshot, err)
		return
	}
	if err := m.archive.Save(ctx, snapshot.ID, payload); err != nil {
		m.failBackup(ctx, actor, snapshot, err)
		return
	}

	completed := m.transition(snapshot.ID, StatusCompleted, int64(len(payload)))
	m.record(ctx, actor, audit.ActionBackupCompleted, completed)
	m.observer.ObserveBackup("completed")
}

func (m *Manager) failBackup(ctx context.Context, actor requestcontext.ActorInfo, snapshot Snapshot, cause error) {
	failed := m.transition(snapshot.ID, StatusFailed, 0)
	m.logger.ErrorContext(ctx, "backup failed",
		"snapshot_id", snapshot.ID,
		"error", cause,
	)
	m.record(ctx, actor, audit.ActionBackupFailed, failed)
	m.observer.ObserveBackup("failed")
}

// Restore replaces the live store contents with a completed snapshot's
// captured copy. Single-flight: a second restore while one is pending fails
// with a conflict instead of queuing silently. The restore gate is held from
// this call until the background replacement resolves, so no mutation can
// interleave.
func (m *Manager) Restore(ctx context.Context, id string) error {
	actor, ok := requestcontext.Actor(ctx)
	if !ok {
		return apperrors.Wrap(apperrors.CodeUnauthorized,
			"restore requires an authenticated actor", sentinel.ErrUnauthenticated)
	}

	snapshot, ok := m.Get(id)
	if !ok {
		return apperrors.Wrap(apperrors.CodeNotFound, "snapshot not found", sentinel.ErrNotFound)
	}
	if snapshot.Status != StatusCompleted {
		return apperrors.Wrap(apperrors.CodeConflict,
			fmt.Sprintf("snapshot is %s, only completed snapshots restore", snapshot.Status),
			sentinel.ErrInvalidState)
	}

	if err := m.store.BeginRestore(); err != nil {
		return apperrors.Wrap(apperrors.CodeConflict, "another restore is already in progress", err)
	}

	m.record(ctx, actor, audit.ActionRestoreStarted, snapshot)

	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	go func() {
		defer cancel()
		defer m.store.EndRestore()
		m.runRestore(bgCtx, actor, snapshot)
	}()

	return nil
}

func (m *Manager) runRestore(ctx context.Context, actor requestcontext.ActorInfo, snapshot Snapshot) {
	if err := m.wait(ctx); err != nil {
		m.failRestore(ctx, actor, snapshot, err)
		return
	}

	payload, err := m.archive.Load(ctx, snapshot.ID)
	if err != nil {
		m.failRestore(ctx, actor, snapshot, err)
		return
	}
	captured, err := decodeSnapshot(payload)
	if err != nil {
		m.failRestore(ctx, actor, snapshot, err)
		return
	}

	m.store.ReplaceCollections(captured)
	m.record(ctx, actor, audit.ActionRestoreCompleted, snapshot)
	m.observer.ObserveRestore("completed")
}

// failRestore leaves the store in its pre-restore state; ReplaceCollections
// only runs on the success path.
func (m *Manager) failRestore(ctx context.Context, actor requestcontext.ActorInfo, snapshot Snapshot, cause error) {
	m.logger.ErrorContext(ctx, "restore failed",
		"snapshot_id", snapshot.ID,
		"error", cause,
	)
	m.record(ctx, actor, audit.ActionRestoreFailed, snapshot)
	m.observer.ObserveRestore("failed")
}

// Get returns a snapshot record by ID.
func (m *Manager) Get(id string) (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot, ok := m.snapshots[id]
	return snapshot, ok
}

// List returns snapshot records, newest first.
func (m *Manager) List() []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Snapshot, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.snapshots[m.order[i]])
	}
	return out
}

// transition moves a snapshot out of in-progress. Terminal states never
// change again.
func (m *Manager) transition(id string, status Status, size int64) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.snapshots[id]
	if snapshot.Status != StatusInProgress {
		return snapshot
	}
	snapshot.Status = status
	snapshot.Size = size
	m.snapshots[id] = snapshot
	return snapshot
}

// wait simulates durability latency while honoring cancellation.
func (m *Manager) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m *Manager) record(ctx context.Context, actor requestcontext.ActorInfo, action string, snapshot Snapshot) {
	m.log.Append(ctx, audit.Entry{
		Action:       action,
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		ResourceType: audit.ResourceSystem,
		ResourceID:   snapshot.ID,
		Details:      snapshot.Name,
		Timestamp:    time.Now().UTC(),
	})
}
