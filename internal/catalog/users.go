package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"greenlight/internal/audit"
	"greenlight/pkg/requestcontext"
	"greenlight/pkg/sentinel"
)

// UserInput carries the caller-supplied fields for a new account record.
type UserInput struct {
	Name  string
	Email string
	Role  UserRole
}

// UserFilter narrows ListUsers. Zero values match everything.
type UserFilter struct {
	Role   UserRole
	Status UserStatus
}

// CreateUser registers a storefront account record. Accounts start active with
// zero investment history.
func (s *Service) CreateUser(ctx context.Context, input UserInput) (User, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Role:      input.Role,
		Status:    UserStatusActive,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}
	if user.Role == "" {
		user.Role = UserRoleUser
	}
	if err := validateUser(user); err != nil {
		return User{}, err
	}

	if err := s.store.InsertUser(user); err != nil {
		return User{}, storeErr(err, "user")
	}
	s.record(ctx, actor, audit.ActionUserCreated, audit.ResourceUser, user.ID, user.Name)
	return user, nil
}

// TransitionUserStatus is the only mutation users support: active, inactive
// or banned. General field updates are deliberately not offered.
func (s *Service) TransitionUserStatus(ctx context.Context, id string, status UserStatus) (User, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return User{}, err
	}
	if !validUserStatuses[status] {
		return User{}, invalid("unknown user status: " + string(status))
	}

	var previous UserStatus
	updated, err := s.store.UpdateUser(id, func(u *User) {
		previous = u.Status
		u.Status = status
	})
	if err != nil {
		return User{}, storeErr(err, "user")
	}
	s.record(ctx, actor, audit.ActionUserStatusTransition, audit.ResourceUser, id,
		fmt.Sprintf("%s: %s -> %s", updated.Name, previous, status))
	return updated, nil
}

// GetUser returns a single account record.
func (s *Service) GetUser(ctx context.Context, id string) (User, error) {
	user, ok := s.store.GetUser(id)
	if !ok {
		return User{}, storeErr(sentinel.ErrNotFound, "user")
	}
	return user, nil
}

// ListUsers returns account records in insertion order, optionally filtered.
func (s *Service) ListUsers(_ context.Context, filter UserFilter) []User {
	all := s.store.ListUsers()
	if filter.Role == "" && filter.Status == "" {
		return all
	}
	out := all[:0]
	for _, user := range all {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		out = append(out, user)
	}
	return out
}
