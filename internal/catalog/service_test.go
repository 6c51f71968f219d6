package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"greenlight/internal/audit"
	"greenlight/pkg/apperrors"
	"greenlight/pkg/requestcontext"
)

// =============================================================================
// Catalog Service Test Suite
// =============================================================================
// Justification for unit tests: the service owns validation, derived fields and
// audit emission. Exercising those rules precisely through HTTP requires full
// session plumbing, so the rules are pinned here against the in-memory store.

type CatalogServiceSuite struct {
	suite.Suite
	store   *Store
	log     *audit.Log
	service *Service
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) SetupTest() {
	s.store = NewStore()
	s.log = audit.NewLog()
	s.service = NewService(s.store, s.log)
}

func (s *CatalogServiceSuite) ctx() context.Context {
	ctx := requestcontext.WithActor(context.Background(), requestcontext.ActorInfo{
		ID:   "actor-1",
		Name: "Test Operator",
	})
	return requestcontext.WithTime(ctx, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
}

func (s *CatalogServiceSuite) mustCreateProject(title string) Project {
	project, err := s.service.CreateProject(s.ctx(), ProjectInput{
		Title:        title,
		Kind:         ProjectKindFilm,
		Category:     "drama",
		TargetAmount: 1000,
		RaisedAmount: 250,
	})
	s.Require().NoError(err)
	return project
}

// =============================================================================
// Actor Attribution
// =============================================================================

func (s *CatalogServiceSuite) TestUnauthenticatedMutationsRejected() {
	ctx := context.Background()

	s.Run("create without actor fails and leaves no trace", func() {
		_, err := s.service.CreateProject(ctx, ProjectInput{Title: "Ghost", Kind: ProjectKindFilm})
		s.Error(err)
		s.Equal(apperrors.CodeUnauthorized, apperrors.CodeOf(err))
		s.Empty(s.store.ListProjects())
		s.Zero(s.log.Len())
	})

	s.Run("delete without actor fails before touching the store", func() {
		project := s.mustCreateProject("Keep Me")
		entries := s.log.Len()

		err := s.service.DeleteProject(ctx, project.ID)
		s.Equal(apperrors.CodeUnauthorized, apperrors.CodeOf(err))
		_, ok := s.store.GetProject(project.ID)
		s.True(ok)
		s.Equal(entries, s.log.Len())
	})

	s.Run("reads work without an actor", func() {
		project := s.mustCreateProject("Readable")
		got, err := s.service.GetProject(ctx, project.ID)
		s.NoError(err)
		s.Equal(project.ID, got.ID)
	})
}

// =============================================================================
// Projects
// =============================================================================

func (s *CatalogServiceSuite) TestCreateProject() {
	s.Run("derives funded percentage and defaults status", func() {
		project := s.mustCreateProject("First Feature")
		s.NotEmpty(project.ID)
		s.Equal(ProjectStatusActive, project.Status)
		s.Equal(25, project.FundedPercentage)
		s.Equal(project.CreatedAt, project.UpdatedAt)
	})

	s.Run("overfunded projects cap at 100", func() {
		project, err := s.service.CreateProject(s.ctx(), ProjectInput{
			Title:        "Runaway Hit",
			Kind:         ProjectKindMusic,
			TargetAmount: 1000,
			RaisedAmount: 1500,
		})
		s.NoError(err)
		s.Equal(100, project.FundedPercentage)
		s.Equal(int64(1500), project.RaisedAmount)
	})

	s.Run("zero target reads as no progress", func() {
		project, err := s.service.CreateProject(s.ctx(), ProjectInput{
			Title: "Unpriced",
			Kind:  ProjectKindWebseries,
		})
		s.NoError(err)
		s.Zero(project.FundedPercentage)
	})

	s.Run("invalid input leaves store and audit untouched", func() {
		before := s.log.Len()
		_, err := s.service.CreateProject(s.ctx(), ProjectInput{Title: "", Kind: ProjectKindFilm})
		s.Equal(apperrors.CodeValidation, apperrors.CodeOf(err))
		s.Empty(s.store.ListProjects())
		s.Equal(before, s.log.Len())
	})

	s.Run("unknown kind rejected", func() {
		_, err := s.service.CreateProject(s.ctx(), ProjectInput{Title: "Odd", Kind: "podcast"})
		s.Equal(apperrors.CodeValidation, apperrors.CodeOf(err))
	})
}

func (s *CatalogServiceSuite) TestUpdateProject() {
	s.Run("merges patch and re-derives funded percentage", func() {
		project := s.mustCreateProject("Mutable")
		raised := int64(900)
		updated, err := s.service.UpdateProject(s.ctx(), project.ID, ProjectPatch{RaisedAmount: &raised})
		s.NoError(err)
		s.Equal(90, updated.FundedPercentage)
		s.Equal(project.Title, updated.Title)
	})

	s.Run("failed validation leaves entity unchanged", func() {
		project := s.mustCreateProject("Atomic")
		empty := ""
		_, err := s.service.UpdateProject(s.ctx(), project.ID, ProjectPatch{Title: &empty})
		s.Equal(apperrors.CodeValidation, apperrors.CodeOf(err))

		current, ok := s.store.GetProject(project.ID)
		s.True(ok)
		s.Equal("Atomic", current.Title)
	})

	s.Run("unknown id is not found", func() {
		title := "New Title"
		_, err := s.service.UpdateProject(s.ctx(), "no-such-id", ProjectPatch{Title: &title})
		s.Equal(apperrors.CodeNotFound, apperrors.CodeOf(err))
	})
}

func (s *CatalogServiceSuite) TestArchiveProject() {
	project := s.mustCreateProject("Shelved")

	archived, err := s.service.ArchiveProject(s.ctx(), project.ID)
	s.NoError(err)
	s.Equal(ProjectStatusArchived, archived.Status)

	// Archived projects stay listed, unlike deleted ones.
	listed := s.service.ListProjects(s.ctx(), ProjectFilter{Status: ProjectStatusArchived})
	s.Len(listed, 1)
}

func (s *CatalogServiceSuite) TestListProjects() {
	s.mustCreateProject("A")
	s.mustCreateProject("B")
	_, err := s.service.CreateProject(s.ctx(), ProjectInput{
		Title: "C", Kind: ProjectKindMusic, Status: ProjectStatusPending,
	})
	s.Require().NoError(err)

	s.Run("insertion order by default", func() {
		all := s.service.ListProjects(s.ctx(), ProjectFilter{})
		s.Require().Len(all, 3)
		s.Equal("A", all[0].Title)
		s.Equal("C", all[2].Title)
	})

	s.Run("filters by status and kind", func() {
		pending := s.service.ListProjects(s.ctx(), ProjectFilter{Status: ProjectStatusPending})
		s.Len(pending, 1)
		films := s.service.ListProjects(s.ctx(), ProjectFilter{Kind: ProjectKindFilm})
		s.Len(films, 2)
	})
}

// =============================================================================
// Merchandise
// =============================================================================

func (s *CatalogServiceSuite) TestMerchandiseStockStatus() {
	create := func(level int) MerchandiseItem {
		item, err := s.service.CreateMerchandise(s.ctx(), MerchandiseInput{
			Title: "Poster", Category: "print", Price: 1500, StockLevel: level,
		})
		s.Require().NoError(err)
		return item
	}

	s.Run("status derived on create", func() {
		s.Equal(StockStatusInStock, create(50).Status)
		s.Equal(StockStatusLowStock, create(10).Status)
		s.Equal(StockStatusOutOfStock, create(0).Status)
	})

	s.Run("status re-derived on stock update", func() {
		item := create(50)
		level := 3
		updated, err := s.service.UpdateMerchandise(s.ctx(), item.ID, MerchandisePatch{StockLevel: &level})
		s.NoError(err)
		s.Equal(StockStatusLowStock, updated.Status)
	})
}

// =============================================================================
// Perks and Weak References
// =============================================================================

func (s *CatalogServiceSuite) TestPerkProjectReference() {
	project := s.mustCreateProject("Referenced")

	perk, err := s.service.CreatePerk(s.ctx(), PerkInput{
		Title:     "Early Screening",
		ProjectID: project.ID,
		Tier:      PerkTierBacker,
		MinAmount: 50,
	})
	s.Require().NoError(err)

	s.Run("dangling reference rejected on create", func() {
		_, err := s.service.CreatePerk(s.ctx(), PerkInput{
			Title: "Orphan", ProjectID: "no-such-project", Tier: PerkTierBacker, MinAmount: 10,
		})
		s.Equal(apperrors.CodeValidation, apperrors.CodeOf(err))
	})

	s.Run("view resolves the live project title", func() {
		view, err := s.service.GetPerk(s.ctx(), perk.ID)
		s.NoError(err)
		s.Equal("Referenced", view.ProjectTitle)
	})

	s.Run("project rename shows up without touching the perk", func() {
		title := "Renamed"
		_, err := s.service.UpdateProject(s.ctx(), project.ID, ProjectPatch{Title: &title})
		s.Require().NoError(err)

		view, err := s.service.GetPerk(s.ctx(), perk.ID)
		s.NoError(err)
		s.Equal("Renamed", view.ProjectTitle)
	})

	s.Run("deleted project falls back to the unknown title", func() {
		s.Require().NoError(s.service.DeleteProject(s.ctx(), project.ID))

		view, err := s.service.GetPerk(s.ctx(), perk.ID)
		s.NoError(err)
		s.Equal(UnknownProjectTitle, view.ProjectTitle)
	})
}

// =============================================================================
// Media Assets
// =============================================================================

func (s *CatalogServiceSuite) TestMediaAssets() {
	asset, err := s.service.CreateMedia(s.ctx(), MediaInput{
		Title:      "Trailer",
		Type:       MediaTypeVideo,
		URL:        "https://cdn.example.com/trailer.mp4",
		FileSize:   1 << 20,
		Dimensions: &Dimensions{Width: 1920, Height: 1080},
		Tags:       []string{"trailer", "hero"},
	})
	s.Require().NoError(err)

	s.Run("invalid url rejected", func() {
		_, err := s.service.CreateMedia(s.ctx(), MediaInput{
			Title: "Broken", Type: MediaTypeImage, URL: "not a url",
		})
		s.Equal(apperrors.CodeValidation, apperrors.CodeOf(err))
	})

	s.Run("list filters by type and tag", func() {
		_, err := s.service.CreateMedia(s.ctx(), MediaInput{
			Title: "Still", Type: MediaTypeImage, URL: "https://cdn.example.com/still.png",
			Tags: []string{"press"},
		})
		s.Require().NoError(err)

		videos := s.service.ListMedia(s.ctx(), MediaFilter{Type: MediaTypeVideo})
		s.Require().Len(videos, 1)
		s.Equal(asset.ID, videos[0].ID)

		tagged := s.service.ListMedia(s.ctx(), MediaFilter{Tag: "press"})
		s.Len(tagged, 1)
	})

	s.Run("patch replaces tags without aliasing the stored slice", func() {
		tags := []string{"updated"}
		updated, err := s.service.UpdateMedia(s.ctx(), asset.ID, MediaPatch{Tags: &tags})
		s.Require().NoError(err)
		tags[0] = "mutated-after-call"

		view, err := s.service.GetMedia(s.ctx(), asset.ID)
		s.NoError(err)
		s.Equal([]string{"updated"}, view.Tags)
		s.Equal([]string{"updated"}, updated.Tags)
	})
}

// =============================================================================
// Users
// =============================================================================

func (s *CatalogServiceSuite) TestUsers() {
	user, err := s.service.CreateUser(s.ctx(), UserInput{
		Name:  "Dana Investor",
		Email: "dana@example.com",
	})
	s.Require().NoError(err)

	s.Run("accounts start active with the default role", func() {
		s.Equal(UserStatusActive, user.Status)
		s.Equal(UserRoleUser, user.Role)
		s.Zero(user.InvestmentCount)
	})

	s.Run("bad email rejected", func() {
		_, err := s.service.CreateUser(s.ctx(), UserInput{Name: "No Mail", Email: "nope"})
		s.Equal(apperrors.CodeValidation, apperrors.CodeOf(err))
	})

	s.Run("status transition records the old and new state", func() {
		banned, err := s.service.TransitionUserStatus(s.ctx(), user.ID, UserStatusBanned)
		s.Require().NoError(err)
		s.Equal(UserStatusBanned, banned.Status)

		entries := s.log.Query(context.Background(), audit.Filter{ResourceType: audit.ResourceUser})
		s.Require().NotEmpty(entries)
		s.Equal(audit.ActionUserStatusTransition, entries[0].Action)
		s.Equal("Dana Investor: active -> banned", entries[0].Details)
	})

	s.Run("unknown status rejected before touching the store", func() {
		_, err := s.service.TransitionUserStatus(s.ctx(), user.ID, "suspended")
		s.Equal(apperrors.CodeValidation, apperrors.CodeOf(err))
	})
}

// =============================================================================
// Audit Emission
// =============================================================================

func (s *CatalogServiceSuite) TestOneAuditEntryPerMutation() {
	project := s.mustCreateProject("Tracked")
	s.Equal(1, s.log.Len())

	title := "Tracked v2"
	_, err := s.service.UpdateProject(s.ctx(), project.ID, ProjectPatch{Title: &title})
	s.Require().NoError(err)
	s.Equal(2, s.log.Len())

	s.Require().NoError(s.service.DeleteProject(s.ctx(), project.ID))
	s.Equal(3, s.log.Len())

	entries := s.log.Query(context.Background(), audit.Filter{})
	s.Require().Len(entries, 3)
	s.Equal(audit.ActionProjectDeleted, entries[0].Action)
	s.Equal(audit.ActionProjectCreated, entries[2].Action)
	for _, entry := range entries {
		s.Equal("actor-1", entry.ActorID)
		s.Equal("Test Operator", entry.ActorName)
	}
}
