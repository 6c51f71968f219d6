package catalog

import (
	"context"
	"errors"
	"log/slog"

	"greenlight/internal/audit"
	"greenlight/pkg/apperrors"
	"greenlight/pkg/requestcontext"
	"greenlight/pkg/sentinel"
)

// Observer receives mutation counts. Satisfied by the platform metrics
// registry; a no-op keeps tests free of prometheus wiring.
type Observer interface {
	ObserveMutation(resource, action string)
}

type noopObserver struct{}

func (noopObserver) ObserveMutation(string, string) {}

// Service owns every entity mutation. It validates input, applies derivations
// the UI used to compute, appends exactly one audit entry per successful
// mutation, and translates store facts into coded errors.
type Service struct {
	store    *Store
	log      *audit.Log
	observer Observer
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithObserver attaches a mutation metrics observer.
func WithObserver(observer Observer) Option {
	return func(s *Service) { s.observer = observer }
}

// NewService wires the store and audit log together.
func NewService(store *Store, log *audit.Log, opts ...Option) *Service {
	s := &Service{
		store:    store,
		log:      log,
		observer: noopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the underlying entity store for the backup manager, which
// needs whole-store export and replace.
func (s *Service) Store() *Store {
	return s.store
}

// actor resolves the authenticated actor or rejects the mutation. Every
// state-changing operation goes through here so unauthenticated callers can
// never produce unattributed audit entries.
func (s *Service) actor(ctx context.Context) (requestcontext.ActorInfo, error) {
	actor, ok := requestcontext.Actor(ctx)
	if !ok {
		return actor, apperrors.Wrap(apperrors.CodeUnauthorized,
			"mutation requires an authenticated actor", sentinel.ErrUnauthenticated)
	}
	return actor, nil
}

// record appends the single audit entry for a successful mutation.
func (s *Service) record(ctx context.Context, actor requestcontext.ActorInfo, action string, resource audit.ResourceType, resourceID, details string) {
	s.log.Append(ctx, audit.Entry{
		Action:       action,
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		ResourceType: resource,
		ResourceID:   resourceID,
		Details:      details,
		Timestamp:    requestcontext.Now(ctx).UTC(),
	})
	s.observer.ObserveMutation(string(resource), action)
}

// storeErr translates store sentinels into coded errors for the caller.
func storeErr(err error, what string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return apperrors.Wrap(apperrors.CodeNotFound, what+" not found", err)
	case errors.Is(err, sentinel.ErrRestoreInFlight):
		return apperrors.Wrap(apperrors.CodeConflict, "a restore is in progress", err)
	default:
		return apperrors.Wrap(apperrors.CodeInternal, "store operation failed", err)
	}
}

// resolveProjectTitle looks up the live title for a weak project reference.
func (s *Service) resolveProjectTitle(projectID string) string {
	if projectID == "" {
		return ""
	}
	if project, ok := s.store.GetProject(projectID); ok {
		return project.Title
	}
	return UnknownProjectTitle
}

// requireProject validates that a weak reference points at a live project.
func (s *Service) requireProject(projectID string) error {
	if projectID == "" {
		return nil
	}
	if _, ok := s.store.GetProject(projectID); !ok {
		return apperrors.New(apperrors.CodeValidation, "referenced project does not exist")
	}
	return nil
}
