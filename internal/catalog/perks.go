package catalog

import (
	"context"

	"github.com/google/uuid"

	"greenlight/internal/audit"
	"greenlight/pkg/requestcontext"
	"greenlight/pkg/sentinel"
)

// PerkInput carries the caller-supplied fields for a new perk.
type PerkInput struct {
	Title       string
	Description string
	ProjectID   string
	Tier        PerkTier
	MinAmount   int64
}

// PerkPatch merges into an existing perk; nil fields stay untouched.
type PerkPatch struct {
	Title       *string
	Description *string
	ProjectID   *string
	Tier        *PerkTier
	MinAmount   *int64
}

// CreatePerk validates the input and the weak project reference, then inserts
// the perk. Only the project id is stored; titles resolve at query time.
func (s *Service) CreatePerk(ctx context.Context, input PerkInput) (Perk, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return Perk{}, err
	}

	perk := Perk{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		Tier:        input.Tier,
		MinAmount:   input.MinAmount,
		CreatedAt:   requestcontext.Now(ctx).UTC(),
	}
	if err := validatePerk(perk); err != nil {
		return Perk{}, err
	}
	if err := s.requireProject(perk.ProjectID); err != nil {
		return Perk{}, err
	}

	if err := s.store.InsertPerk(perk); err != nil {
		return Perk{}, storeErr(err, "perk")
	}
	s.record(ctx, actor, audit.ActionPerkCreated, audit.ResourcePerk, perk.ID, perk.Title)
	return perk, nil
}

// UpdatePerk merges the patch into an existing perk.
func (s *Service) UpdatePerk(ctx context.Context, id string, patch PerkPatch) (Perk, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return Perk{}, err
	}

	current, ok := s.store.GetPerk(id)
	if !ok {
		return Perk{}, storeErr(sentinel.ErrNotFound, "perk")
	}
	merged := applyPerkPatch(current, patch)
	if err := validatePerk(merged); err != nil {
		return Perk{}, err
	}
	if patch.ProjectID != nil {
		if err := s.requireProject(merged.ProjectID); err != nil {
			return Perk{}, err
		}
	}

	updated, err := s.store.UpdatePerk(id, func(p *Perk) { *p = merged })
	if err != nil {
		return Perk{}, storeErr(err, "perk")
	}
	s.record(ctx, actor, audit.ActionPerkUpdated, audit.ResourcePerk, updated.ID, updated.Title)
	return updated, nil
}

// DeletePerk removes the perk permanently.
func (s *Service) DeletePerk(ctx context.Context, id string) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.store.DeletePerk(id)
	if err != nil {
		return storeErr(err, "perk")
	}
	s.record(ctx, actor, audit.ActionPerkDeleted, audit.ResourcePerk, id, deleted.Title)
	return nil
}

// GetPerk returns a single perk with its project reference resolved.
func (s *Service) GetPerk(ctx context.Context, id string) (PerkView, error) {
	perk, ok := s.store.GetPerk(id)
	if !ok {
		return PerkView{}, storeErr(sentinel.ErrNotFound, "perk")
	}
	return PerkView{Perk: perk, ProjectTitle: s.resolveProjectTitle(perk.ProjectID)}, nil
}

// ListPerks returns perks in insertion order with project references resolved,
// optionally narrowed to a tier.
func (s *Service) ListPerks(_ context.Context, tier PerkTier) []PerkView {
	all := s.store.ListPerks()
	out := make([]PerkView, 0, len(all))
	for _, perk := range all {
		if tier != "" && perk.Tier != tier {
			continue
		}
		out = append(out, PerkView{Perk: perk, ProjectTitle: s.resolveProjectTitle(perk.ProjectID)})
	}
	return out
}

func applyPerkPatch(p Perk, patch PerkPatch) Perk {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.ProjectID != nil {
		p.ProjectID = *patch.ProjectID
	}
	if patch.Tier != nil {
		p.Tier = *patch.Tier
	}
	if patch.MinAmount != nil {
		p.MinAmount = *patch.MinAmount
	}
	return p
}
