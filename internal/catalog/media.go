package catalog

import (
	"context"

	"github.com/google/uuid"

	"greenlight/internal/audit"
	"greenlight/pkg/requestcontext"
	"greenlight/pkg/sentinel"
)

// MediaInput carries the caller-supplied fields for a new asset.
type MediaInput struct {
	Title      string
	Type       MediaType
	URL        string
	FileSize   int64
	Dimensions *Dimensions
	ProjectID  string
	Tags       []string
}

// MediaPatch merges into an existing asset; nil fields stay untouched.
type MediaPatch struct {
	Title      *string
	Type       *MediaType
	URL        *string
	FileSize   *int64
	Dimensions *Dimensions
	ProjectID  *string
	Tags       *[]string
}

// MediaFilter narrows ListMedia. Zero values match everything.
type MediaFilter struct {
	Type MediaType
	Tag  string
}

// CreateMedia validates the input and the weak project reference, then
// registers the asset.
func (s *Service) CreateMedia(ctx context.Context, input MediaInput) (MediaAsset, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return MediaAsset{}, err
	}

	asset := MediaAsset{
		ID:         uuid.NewString(),
		Title:      input.Title,
		Type:       input.Type,
		URL:        input.URL,
		FileSize:   input.FileSize,
		Dimensions: input.Dimensions,
		ProjectID:  input.ProjectID,
		Tags:       append([]string(nil), input.Tags...),
		CreatedAt:  requestcontext.Now(ctx).UTC(),
	}
	if err := validateMedia(asset); err != nil {
		return MediaAsset{}, err
	}
	if err := s.requireProject(asset.ProjectID); err != nil {
		return MediaAsset{}, err
	}

	if err := s.store.InsertMedia(asset); err != nil {
		return MediaAsset{}, storeErr(err, "media asset")
	}
	s.record(ctx, actor, audit.ActionMediaUploaded, audit.ResourceMedia, asset.ID, asset.Title)
	return asset, nil
}

// UpdateMedia merges the patch into an existing asset.
func (s *Service) UpdateMedia(ctx context.Context, id string, patch MediaPatch) (MediaAsset, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return MediaAsset{}, err
	}

	current, ok := s.store.GetMedia(id)
	if !ok {
		return MediaAsset{}, storeErr(sentinel.ErrNotFound, "media asset")
	}
	merged := applyMediaPatch(current, patch)
	if err := validateMedia(merged); err != nil {
		return MediaAsset{}, err
	}
	if patch.ProjectID != nil {
		if err := s.requireProject(merged.ProjectID); err != nil {
			return MediaAsset{}, err
		}
	}

	updated, err := s.store.UpdateMedia(id, func(m *MediaAsset) { *m = merged })
	if err != nil {
		return MediaAsset{}, storeErr(err, "media asset")
	}
	s.record(ctx, actor, audit.ActionMediaUpdated, audit.ResourceMedia, updated.ID, updated.Title)
	return updated, nil
}

// DeleteMedia removes the asset permanently.
func (s *Service) DeleteMedia(ctx context.Context, id string) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.store.DeleteMedia(id)
	if err != nil {
		return storeErr(err, "media asset")
	}
	s.record(ctx, actor, audit.ActionMediaDeleted, audit.ResourceMedia, id, deleted.Title)
	return nil
}

// GetMedia returns a single asset with its project reference resolved.
func (s *Service) GetMedia(ctx context.Context, id string) (MediaAssetView, error) {
	asset, ok := s.store.GetMedia(id)
	if !ok {
		return MediaAssetView{}, storeErr(sentinel.ErrNotFound, "media asset")
	}
	return MediaAssetView{MediaAsset: asset, ProjectTitle: s.resolveProjectTitle(asset.ProjectID)}, nil
}

// ListMedia returns assets in insertion order with project references
// resolved, optionally filtered by type or tag.
func (s *Service) ListMedia(_ context.Context, filter MediaFilter) []MediaAssetView {
	all := s.store.ListMedia()
	out := make([]MediaAssetView, 0, len(all))
	for _, asset := range all {
		if filter.Type != "" && asset.Type != filter.Type {
			continue
		}
		if filter.Tag != "" && !hasTag(asset.Tags, filter.Tag) {
			continue
		}
		out = append(out, MediaAssetView{MediaAsset: asset, ProjectTitle: s.resolveProjectTitle(asset.ProjectID)})
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func applyMediaPatch(m MediaAsset, patch MediaPatch) MediaAsset {
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Type != nil {
		m.Type = *patch.Type
	}
	if patch.URL != nil {
		m.URL = *patch.URL
	}
	if patch.FileSize != nil {
		m.FileSize = *patch.FileSize
	}
	if patch.Dimensions != nil {
		d := *patch.Dimensions
		m.Dimensions = &d
	}
	if patch.ProjectID != nil {
		m.ProjectID = *patch.ProjectID
	}
	if patch.Tags != nil {
		m.Tags = append([]string(nil), (*patch.Tags)...)
	}
	return m
}
