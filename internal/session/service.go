package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/careerlink-app/careerlink-backend/internal/identity"
	"github.com/careerlink-app/careerlink-backend/internal/profiles"
	"github.com/careerlink-app/careerlink-backend/internal/users"
	"github.com/careerlink-app/careerlink-backend/pkg/db"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service resolves the caller's session snapshot and evaluates route access.
// Completion state is read from the store, not the token, so a freshly
// finished onboarding takes effect without waiting for a token refresh.
type Service interface {
	Snapshot(ctx context.Context, userID *uuid.UUID) (Snapshot, error)
	Authorize(ctx context.Context, userID *uuid.UUID, route Route) (Decision, error)
}

type service struct {
	db *db.Client
}

// ServiceParams bundles the dependencies required to build a session service.
type ServiceParams struct {
	DB *db.Client
}

// NewService constructs a session service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: params.DB}, nil
}

func (s *service) Snapshot(ctx context.Context, userID *uuid.UUID) (Snapshot, error) {
	if userID == nil {
		return SnapshotFor(nil), nil
	}

	user, err := users.NewRepository(s.db.DB()).FindByID(ctx, *userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The account vanished under a live token; treat as signed out.
			return SnapshotFor(nil), nil
		}
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	profile, err := profiles.NewRepository(s.db.DB()).FindByUserID(ctx, *userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, pkgerrors.New(pkgerrors.CodeInternal, "profile missing for account")
		}
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
	}

	return SnapshotFor(&identity.Identity{
		UserID:          user.ID,
		Email:           user.Email,
		UserType:        profile.UserType,
		ProfileComplete: profile.ProfileComplete,
	}), nil
}

func (s *service) Authorize(ctx context.Context, userID *uuid.UUID, route Route) (Decision, error) {
	snapshot, err := s.Snapshot(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	return Authorize(snapshot, route), nil
}
