package catalog

import (
	"context"

	"github.com/google/uuid"

	"greenlight/internal/audit"
	"greenlight/pkg/requestcontext"
	"greenlight/pkg/sentinel"
)

// MerchandiseInput carries the caller-supplied fields for a new item.
type MerchandiseInput struct {
	Title      string
	Category   string
	Price      int64
	StockLevel int
}

// MerchandisePatch merges into an existing item; nil fields stay untouched.
type MerchandisePatch struct {
	Title      *string
	Category   *string
	Price      *int64
	StockLevel *int
}

// CreateMerchandise validates the input, derives the stock status and inserts
// the item.
func (s *Service) CreateMerchandise(ctx context.Context, input MerchandiseInput) (MerchandiseItem, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return MerchandiseItem{}, err
	}

	item := MerchandiseItem{
		ID:         uuid.NewString(),
		Title:      input.Title,
		Category:   input.Category,
		Price:      input.Price,
		StockLevel: input.StockLevel,
		CreatedAt:  requestcontext.Now(ctx).UTC(),
	}
	if err := validateMerchandise(item); err != nil {
		return MerchandiseItem{}, err
	}
	item.Status = StockStatusFor(item.StockLevel)

	if err := s.store.InsertMerchandise(item); err != nil {
		return MerchandiseItem{}, storeErr(err, "merchandise item")
	}
	s.record(ctx, actor, audit.ActionMerchandiseCreated, audit.ResourceMerchandise, item.ID, item.Title)
	return item, nil
}

// UpdateMerchandise merges the patch and re-derives the stock status.
func (s *Service) UpdateMerchandise(ctx context.Context, id string, patch MerchandisePatch) (MerchandiseItem, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return MerchandiseItem{}, err
	}

	current, ok := s.store.GetMerchandise(id)
	if !ok {
		return MerchandiseItem{}, storeErr(sentinel.ErrNotFound, "merchandise item")
	}
	merged := applyMerchandisePatch(current, patch)
	if err := validateMerchandise(merged); err != nil {
		return MerchandiseItem{}, err
	}

	updated, err := s.store.UpdateMerchandise(id, func(m *MerchandiseItem) {
		*m = merged
		m.Status = StockStatusFor(m.StockLevel)
	})
	if err != nil {
		return MerchandiseItem{}, storeErr(err, "merchandise item")
	}
	s.record(ctx, actor, audit.ActionMerchandiseUpdated, audit.ResourceMerchandise, updated.ID, updated.Title)
	return updated, nil
}

// DeleteMerchandise removes the item permanently.
func (s *Service) DeleteMerchandise(ctx context.Context, id string) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.store.DeleteMerchandise(id)
	if err != nil {
		return storeErr(err, "merchandise item")
	}
	s.record(ctx, actor, audit.ActionMerchandiseDeleted, audit.ResourceMerchandise, id, deleted.Title)
	return nil
}

// GetMerchandise returns a single item.
func (s *Service) GetMerchandise(ctx context.Context, id string) (MerchandiseItem, error) {
	item, ok := s.store.GetMerchandise(id)
	if !ok {
		return MerchandiseItem{}, storeErr(sentinel.ErrNotFound, "merchandise item")
	}
	return item, nil
}

// ListMerchandise returns items in insertion order, optionally narrowed to a
// category.
func (s *Service) ListMerchandise(_ context.Context, category string) []MerchandiseItem {
	all := s.store.ListMerchandise()
	if category == "" {
		return all
	}
	out := all[:0]
	for _, item := range all {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

func applyMerchandisePatch(m MerchandiseItem, patch MerchandisePatch) MerchandiseItem {
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Category != nil {
		m.Category = *patch.Category
	}
	if patch.Price != nil {
		m.Price = *patch.Price
	}
	if patch.StockLevel != nil {
		m.StockLevel = *patch.StockLevel
	}
	return m
}
