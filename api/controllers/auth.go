package controllers

import (
	"net/http"
	"strings"

	"github.com/careerlink-app/careerlink-backend/api/responses"
	"github.com/careerlink-app/careerlink-backend/api/validators"
	"github.com/careerlink-app/careerlink-backend/internal/identity"
	pkgAuth "github.com/careerlink-app/careerlink-backend/pkg/auth"
	"github.com/careerlink-app/careerlink-backend/pkg/config"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
	"github.com/careerlink-app/careerlink-backend/pkg/logger"
)

// bearerToken extracts the raw token from an Authorization header.
func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

// AuthRegister wires the sign-up endpoint into the HTTP layer.
func AuthRegister(provider identity.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "identity provider unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body identity.SignUpRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := provider.SignUp(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AuthLogin wires the sign-in endpoint into the HTTP layer.
func AuthLogin(provider identity.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "identity provider unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body identity.SignInRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := provider.SignIn(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the refresh session named by the access token's jti.
// Expired access tokens are accepted so a stale tab can still sign out.
func AuthLogout(provider identity.Provider, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			err := pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims, err := pkgAuth.ParseAccessTokenAllowExpired(cfg, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
			return
		}
		if claims.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
			return
		}

		if err := provider.SignOut(r.Context(), claims.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthRefresh rotates the refresh token and mints a fresh access token with
// current role and completion claims.
func AuthRefresh(provider identity.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			err := pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body refreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := provider.Refresh(r.Context(), token, body.RefreshToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
