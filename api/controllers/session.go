package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/careerlink-app/careerlink-backend/api/middleware"
	"github.com/careerlink-app/careerlink-backend/api/responses"
	"github.com/careerlink-app/careerlink-backend/api/validators"
	"github.com/careerlink-app/careerlink-backend/internal/session"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
	"github.com/careerlink-app/careerlink-backend/pkg/logger"
)

type authorizeRequest struct {
	Path         string `json:"path" validate:"required"`
	RequiredRole string `json:"required_role,omitempty"`
}

// SessionAuthorize evaluates the route guard for the caller. Anonymous
// callers are legal; the decision tells the client shell what to do.
func SessionAuthorize(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body authorizeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		route := session.Route{Path: body.Path}
		if body.RequiredRole != "" {
			role, err := enums.ParseUserType(body.RequiredRole)
			if err != nil {
				typed := pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid required_role").
					WithDetails(map[string]any{"required_role": body.RequiredRole})
				responses.WriteError(r.Context(), logg, w, typed)
				return
			}
			route.RequiredRole = role
		}

		var userID *uuid.UUID
		if id, ok := middleware.UserIDFromContext(r.Context()); ok {
			userID = &id
		}

		decision, err := svc.Authorize(r.Context(), userID, route)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, decision)
	}
}

// SessionSnapshot reports the caller's current access state.
func SessionSnapshot(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var userID *uuid.UUID
		if id, ok := middleware.UserIDFromContext(r.Context()); ok {
			userID = &id
		}

		snapshot, err := svc.Snapshot(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}
