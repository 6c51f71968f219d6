package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenlight/pkg/sentinel"
)

func seedProject(t *testing.T, s *Store, id, title string) {
	t.Helper()
	require.NoError(t, s.InsertProject(Project{ID: id, Title: title, Kind: ProjectKindFilm, Status: ProjectStatusActive}))
}

func TestStoreInsertionOrder(t *testing.T) {
	s := NewStore()
	seedProject(t, s, "p1", "First")
	seedProject(t, s, "p2", "Second")
	seedProject(t, s, "p3", "Third")

	listed := s.ListProjects()
	require.Len(t, listed, 3)
	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{listed[0].ID, listed[1].ID, listed[2].ID})

	// Re-inserting an existing id keeps its original position.
	require.NoError(t, s.InsertProject(Project{ID: "p1", Title: "First v2", Kind: ProjectKindFilm, Status: ProjectStatusActive}))
	listed = s.ListProjects()
	require.Len(t, listed, 3)
	assert.Equal(t, "p1", listed[0].ID)
	assert.Equal(t, "First v2", listed[0].Title)
}

func TestStoreCloneOnRead(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.InsertMedia(MediaAsset{
		ID:         "m1",
		Title:      "Still",
		Type:       MediaTypeImage,
		URL:        "https://cdn.example.com/still.png",
		Dimensions: &Dimensions{Width: 800, Height: 600},
		Tags:       []string{"press"},
	}))

	got, ok := s.GetMedia("m1")
	require.True(t, ok)
	got.Tags[0] = "tampered"
	got.Dimensions.Width = 1

	fresh, ok := s.GetMedia("m1")
	require.True(t, ok)
	assert.Equal(t, []string{"press"}, fresh.Tags)
	assert.Equal(t, 800, fresh.Dimensions.Width)
}

func TestStoreUpdatePreservesID(t *testing.T) {
	s := NewStore()
	seedProject(t, s, "p1", "Original")

	updated, err := s.UpdateProject("p1", func(p *Project) {
		p.ID = "forged"
		p.Title = "Renamed"
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", updated.ID)
	assert.Equal(t, "Renamed", updated.Title)

	_, ok := s.GetProject("forged")
	assert.False(t, ok)
}

func TestStoreRestoreGate(t *testing.T) {
	s := NewStore()
	seedProject(t, s, "p1", "Survivor")

	require.NoError(t, s.BeginRestore())

	assert.ErrorIs(t, s.InsertProject(Project{ID: "p2"}), sentinel.ErrRestoreInFlight)
	_, err := s.UpdateProject("p1", func(p *Project) { p.Title = "Blocked" })
	assert.ErrorIs(t, err, sentinel.ErrRestoreInFlight)
	_, err = s.DeleteProject("p1")
	assert.ErrorIs(t, err, sentinel.ErrRestoreInFlight)

	// Second restore cannot start while one is in flight.
	assert.ErrorIs(t, s.BeginRestore(), sentinel.ErrRestoreInFlight)

	// Reads stay available throughout.
	got, ok := s.GetProject("p1")
	require.True(t, ok)
	assert.Equal(t, "Survivor", got.Title)

	s.EndRestore()
	require.NoError(t, s.InsertProject(Project{ID: "p2", Title: "After", Kind: ProjectKindMusic, Status: ProjectStatusActive}))
}

func TestStoreExportReplace(t *testing.T) {
	s := NewStore()
	seedProject(t, s, "p1", "Kept")
	require.NoError(t, s.InsertUser(User{ID: "u1", Name: "Dana", Email: "dana@example.com", Role: UserRoleUser, Status: UserStatusActive}))

	snapshot := s.ExportCollections()
	require.Len(t, snapshot.Projects, 1)
	require.Len(t, snapshot.Users, 1)

	// Drift the live store, then replace it with the snapshot.
	seedProject(t, s, "p2", "Drift")
	_, err := s.DeleteProject("p1")
	require.NoError(t, err)

	s.ReplaceCollections(snapshot)

	listed := s.ListProjects()
	require.Len(t, listed, 1)
	assert.Equal(t, "p1", listed[0].ID)
	users := s.ListUsers()
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
}
