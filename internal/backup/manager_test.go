package backup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"greenlight/internal/audit"
	"greenlight/internal/catalog"
	"greenlight/pkg/apperrors"
	"greenlight/pkg/requestcontext"
	"greenlight/pkg/sentinel"
)

// =============================================================================
// Backup Manager Test Suite
// =============================================================================
// Justification for unit tests: backups and restores are asynchronous with
// status transitions, a restore gate and audit emission on both phases. The
// manager runs with zero simulated delay here; tests poll for terminal states.

type countingObserver struct {
	mu       sync.Mutex
	backups  map[string]int
	restores map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{backups: make(map[string]int), restores: make(map[string]int)}
}

func (o *countingObserver) ObserveBackup(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.backups[outcome]++
}

func (o *countingObserver) ObserveRestore(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.restores[outcome]++
}

func (o *countingObserver) backupCount(outcome string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.backups[outcome]
}

func (o *countingObserver) restoreCount(outcome string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.restores[outcome]
}

type failingArchive struct {
	err error
}

func (a failingArchive) Save(context.Context, string, []byte) error {
	return a.err
}

func (a failingArchive) Load(context.Context, string) ([]byte, error) {
	return nil, a.err
}

type BackupManagerSuite struct {
	suite.Suite
	store    *catalog.Store
	log      *audit.Log
	archive  *MemoryArchive
	observer *countingObserver
	manager  *Manager
}

func TestBackupManagerSuite(t *testing.T) {
	suite.Run(t, new(BackupManagerSuite))
}

func (s *BackupManagerSuite) SetupTest() {
	s.store = catalog.NewStore()
	s.log = audit.NewLog()
	s.archive = NewMemoryArchive()
	s.observer = newCountingObserver()
	s.manager = NewManager(s.store, s.log, s.archive,
		WithObserver(s.observer),
		WithDelay(0),
	)
}

func (s *BackupManagerSuite) ctx() context.Context {
	return requestcontext.WithActor(context.Background(), requestcontext.ActorInfo{
		ID:   "actor-1",
		Name: "Test Operator",
	})
}

func (s *BackupManagerSuite) seedProject(id, title string) {
	s.Require().NoError(s.store.InsertProject(catalog.Project{
		ID: id, Title: title, Kind: catalog.ProjectKindFilm, Status: catalog.ProjectStatusActive,
	}))
}

func (s *BackupManagerSuite) completedSnapshot() Snapshot {
	snapshot, err := s.manager.Create(s.ctx())
	s.Require().NoError(err)
	s.Require().Eventually(func() bool {
		current, ok := s.manager.Get(snapshot.ID)
		return ok && current.Status == StatusCompleted
	}, time.Second, 5*time.Millisecond)
	current, _ := s.manager.Get(snapshot.ID)
	return current
}

// =============================================================================
// Create
// =============================================================================

func (s *BackupManagerSuite) TestCreate() {
	s.Run("requires an authenticated actor", func() {
		_, err := s.manager.Create(context.Background())
		s.Equal(apperrors.CodeUnauthorized, apperrors.CodeOf(err))
		s.Empty(s.manager.List())
	})

	s.Run("registers in-progress and completes in the background", func() {
		s.seedProject("p1", "Captured")

		snapshot, err := s.manager.Create(s.ctx())
		s.Require().NoError(err)
		s.Equal(StatusInProgress, snapshot.Status)
		s.Contains(snapshot.Name, "Backup ")

		s.Require().Eventually(func() bool {
			current, ok := s.manager.Get(snapshot.ID)
			return ok && current.Status == StatusCompleted
		}, time.Second, 5*time.Millisecond)

		completed, _ := s.manager.Get(snapshot.ID)
		s.Positive(completed.Size)
		s.Equal(1, s.observer.backupCount("completed"))

		entries := s.log.Query(context.Background(), audit.Filter{ResourceType: audit.ResourceSystem})
		s.Require().Len(entries, 2)
		s.Equal(audit.ActionBackupCompleted, entries[0].Action)
		s.Equal(audit.ActionBackupStarted, entries[1].Action)
	})

	s.Run("archive failure lands in failed, not completed", func() {
		manager := NewManager(s.store, s.log, failingArchive{err: errors.New("disk gone")},
			WithObserver(s.observer), WithDelay(0))

		snapshot, err := manager.Create(s.ctx())
		s.Require().NoError(err)

		s.Require().Eventually(func() bool {
			current, ok := manager.Get(snapshot.ID)
			return ok && current.Status == StatusFailed
		}, time.Second, 5*time.Millisecond)
		s.Equal(1, s.observer.backupCount("failed"))

		entries := s.log.Query(context.Background(), audit.Filter{Text: audit.ActionBackupFailed})
		s.Len(entries, 1)
	})
}

func (s *BackupManagerSuite) TestListNewestFirst() {
	first := s.completedSnapshot()
	second := s.completedSnapshot()

	listed := s.manager.List()
	s.Require().Len(listed, 2)
	s.Equal(second.ID, listed[0].ID)
	s.Equal(first.ID, listed[1].ID)
}

// =============================================================================
// Restore
// =============================================================================

func (s *BackupManagerSuite) TestRestoreRoundTrip() {
	s.seedProject("p1", "Original")
	snapshot := s.completedSnapshot()

	// Drift the store after the capture.
	s.seedProject("p2", "Drift")
	_, err := s.store.DeleteProject("p1")
	s.Require().NoError(err)

	s.Require().NoError(s.manager.Restore(s.ctx(), snapshot.ID))

	s.Require().Eventually(func() bool {
		listed := s.store.ListProjects()
		return len(listed) == 1 && listed[0].ID == "p1"
	}, time.Second, 5*time.Millisecond)

	s.Equal(1, s.observer.restoreCount("completed"))
	entries := s.log.Query(context.Background(), audit.Filter{Text: audit.ActionRestoreCompleted})
	s.Len(entries, 1)
}

func (s *BackupManagerSuite) TestRestorePreconditions() {
	s.Run("requires an authenticated actor", func() {
		err := s.manager.Restore(context.Background(), "whatever")
		s.Equal(apperrors.CodeUnauthorized, apperrors.CodeOf(err))
	})

	s.Run("unknown snapshot is not found", func() {
		err := s.manager.Restore(s.ctx(), "no-such-snapshot")
		s.Equal(apperrors.CodeNotFound, apperrors.CodeOf(err))
	})

	s.Run("only completed snapshots restore", func() {
		manager := NewManager(s.store, s.log, failingArchive{err: errors.New("down")}, WithDelay(0))
		snapshot, err := manager.Create(s.ctx())
		s.Require().NoError(err)
		s.Require().Eventually(func() bool {
			current, ok := manager.Get(snapshot.ID)
			return ok && current.Status == StatusFailed
		}, time.Second, 5*time.Millisecond)

		err = manager.Restore(s.ctx(), snapshot.ID)
		s.Equal(apperrors.CodeConflict, apperrors.CodeOf(err))
	})
}

func (s *BackupManagerSuite) TestRestoreBlocksMutationsAndIsSingleFlight() {
	s.seedProject("p1", "Original")
	snapshot := s.completedSnapshot()

	// A real delay keeps the restore pending long enough to probe the gate.
	manager := NewManager(s.store, s.log, s.archive, WithDelay(100*time.Millisecond))
	s.Require().NoError(manager.Restore(s.ctx(), snapshot.ID))

	s.Run("mutations are rejected while the restore is pending", func() {
		err := s.store.InsertProject(catalog.Project{ID: "p2"})
		s.ErrorIs(err, sentinel.ErrRestoreInFlight)
	})

	s.Run("second restore conflicts instead of queuing", func() {
		err := manager.Restore(s.ctx(), snapshot.ID)
		s.Equal(apperrors.CodeConflict, apperrors.CodeOf(err))
	})

	s.Run("gate lifts after the restore resolves", func() {
		s.Require().Eventually(func() bool {
			return s.store.InsertProject(catalog.Project{ID: "p3", Title: "After"}) == nil
		}, time.Second, 10*time.Millisecond)
	})
}

func (s *BackupManagerSuite) TestFailedRestoreLeavesStoreUntouched() {
	s.seedProject("p1", "Original")
	snapshot := s.completedSnapshot()

	// Same snapshot record, but the payload is gone from this archive.
	manager := NewManager(s.store, s.log, NewMemoryArchive(), WithObserver(s.observer), WithDelay(0))
	manager.mu.Lock()
	manager.snapshots[snapshot.ID] = snapshot
	manager.order = append(manager.order, snapshot.ID)
	manager.mu.Unlock()

	s.Require().NoError(manager.Restore(s.ctx(), snapshot.ID))

	s.Require().Eventually(func() bool {
		return s.observer.restoreCount("failed") == 1
	}, time.Second, 5*time.Millisecond)

	listed := s.store.ListProjects()
	s.Require().Len(listed, 1)
	s.Equal("Original", listed[0].Title)

	entries := s.log.Query(context.Background(), audit.Filter{Text: audit.ActionRestoreFailed})
	s.Len(entries, 1)
}

// =============================================================================
// Codec
// =============================================================================

func (s *BackupManagerSuite) TestCodecVersionGuard() {
	payload, err := encodeSnapshot(catalog.Collections{}, time.Now().UTC())
	s.Require().NoError(err)

	_, err = decodeSnapshot(payload)
	s.NoError(err)

	_, err = decodeSnapshot([]byte(`{"version": 99, "collections": {}}`))
	s.Error(err)

	_, err = decodeSnapshot([]byte(`not json`))
	s.Error(err)
}
