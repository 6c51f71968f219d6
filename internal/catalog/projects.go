package catalog

import (
	"context"

	"github.com/google/uuid"

	"greenlight/internal/audit"
	"greenlight/pkg/requestcontext"
	"greenlight/pkg/sentinel"
)

// ProjectInput carries the caller-supplied fields for a new project.
type ProjectInput struct {
	Title        string
	Kind         ProjectKind
	Category     string
	Status       ProjectStatus
	TargetAmount int64
	RaisedAmount int64
	PosterID     string
}

// ProjectPatch merges into an existing project; nil fields stay untouched.
type ProjectPatch struct {
	Title        *string
	Kind         *ProjectKind
	Category     *string
	Status       *ProjectStatus
	TargetAmount *int64
	RaisedAmount *int64
	PosterID     *string
}

// ProjectFilter narrows ListProjects. Zero values match everything.
type ProjectFilter struct {
	Status ProjectStatus
	Kind   ProjectKind
}

// CreateProject validates the input, derives the funded percentage, inserts
// the project and appends one audit entry.
func (s *Service) CreateProject(ctx context.Context, input ProjectInput) (Project, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return Project{}, err
	}

	now := requestcontext.Now(ctx).UTC()
	project := Project{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Kind:         input.Kind,
		Category:     input.Category,
		Status:       input.Status,
		TargetAmount: input.TargetAmount,
		RaisedAmount: input.RaisedAmount,
		PosterID:     input.PosterID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if project.Status == "" {
		project.Status = ProjectStatusActive
	}
	if err := validateProject(project); err != nil {
		return Project{}, err
	}
	project.FundedPercentage = FundedPercentage(project.RaisedAmount, project.TargetAmount)

	if err := s.store.InsertProject(project); err != nil {
		return Project{}, storeErr(err, "project")
	}
	s.record(ctx, actor, audit.ActionProjectCreated, audit.ResourceProject, project.ID, project.Title)
	return project, nil
}

// UpdateProject merges the patch, re-derives the funded percentage and bumps
// UpdatedAt. The store stays untouched when validation fails.
func (s *Service) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (Project, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return Project{}, err
	}

	current, ok := s.store.GetProject(id)
	if !ok {
		return Project{}, storeErr(sentinel.ErrNotFound, "project")
	}
	merged := applyProjectPatch(current, patch)
	if err := validateProject(merged); err != nil {
		return Project{}, err
	}

	now := requestcontext.Now(ctx).UTC()
	updated, err := s.store.UpdateProject(id, func(p *Project) {
		*p = merged
		p.FundedPercentage = FundedPercentage(p.RaisedAmount, p.TargetAmount)
		p.UpdatedAt = now
	})
	if err != nil {
		return Project{}, storeErr(err, "project")
	}
	s.record(ctx, actor, audit.ActionProjectUpdated, audit.ResourceProject, updated.ID, updated.Title)
	return updated, nil
}

// DeleteProject removes the project permanently. Perks and media assets that
// referenced it keep their weak reference and resolve to the unknown-project
// fallback afterwards.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.store.DeleteProject(id)
	if err != nil {
		return storeErr(err, "project")
	}
	s.record(ctx, actor, audit.ActionProjectDeleted, audit.ResourceProject, id, deleted.Title)
	return nil
}

// ArchiveProject is the non-destructive alternative to delete: the project
// stays listed with status archived.
func (s *Service) ArchiveProject(ctx context.Context, id string) (Project, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return Project{}, err
	}
	now := requestcontext.Now(ctx).UTC()
	archived, err := s.store.UpdateProject(id, func(p *Project) {
		p.Status = ProjectStatusArchived
		p.UpdatedAt = now
	})
	if err != nil {
		return Project{}, storeErr(err, "project")
	}
	s.record(ctx, actor, audit.ActionProjectArchived, audit.ResourceProject, id, archived.Title)
	return archived, nil
}

// GetProject returns a single project.
func (s *Service) GetProject(ctx context.Context, id string) (Project, error) {
	project, ok := s.store.GetProject(id)
	if !ok {
		return Project{}, storeErr(sentinel.ErrNotFound, "project")
	}
	return project, nil
}

// ListProjects returns projects in insertion order, optionally filtered.
func (s *Service) ListProjects(_ context.Context, filter ProjectFilter) []Project {
	all := s.store.ListProjects()
	if filter.Status == "" && filter.Kind == "" {
		return all
	}
	out := all[:0]
	for _, p := range all {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Kind != "" && p.Kind != filter.Kind {
			continue
		}
		out = append(out, p)
	}
	return out
}

func applyProjectPatch(p Project, patch ProjectPatch) Project {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Kind != nil {
		p.Kind = *patch.Kind
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.TargetAmount != nil {
		p.TargetAmount = *patch.TargetAmount
	}
	if patch.RaisedAmount != nil {
		p.RaisedAmount = *patch.RaisedAmount
	}
	if patch.PosterID != nil {
		p.PosterID = *patch.PosterID
	}
	return p
}
