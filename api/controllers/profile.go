package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/careerlink-app/careerlink-backend/api/middleware"
	"github.com/careerlink-app/careerlink-backend/api/responses"
	"github.com/careerlink-app/careerlink-backend/api/validators"
	"github.com/careerlink-app/careerlink-backend/internal/profiles"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
	"github.com/careerlink-app/careerlink-backend/pkg/logger"
)

// IdentityRefresher re-broadcasts the caller's identity after onboarding so
// session subscribers observe the completion transition.
type IdentityRefresher interface {
	RefreshIdentity(ctx context.Context, userID uuid.UUID) error
}

// ProfileMe returns the caller's profile.
func ProfileMe(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		profile, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// ProfileComplete finishes onboarding for the caller's role.
func ProfileComplete(svc profiles.Service, refresher IdentityRefresher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var body profiles.CompleteProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Complete(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if refresher != nil {
			if err := refresher.RefreshIdentity(r.Context(), userID); err != nil && logg != nil {
				ctx := logg.WithUserID(r.Context(), userID.String())
				logg.Error(ctx, "identity refresh after onboarding failed", err)
			}
		}

		responses.WriteSuccess(w, profile)
	}
}
