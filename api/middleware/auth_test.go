package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/careerlink-app/careerlink-backend/pkg/auth"
	"github.com/careerlink-app/careerlink-backend/pkg/auth/session"
	"github.com/careerlink-app/careerlink-backend/pkg/config"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
)

type stubChecker struct {
	ok     bool
	err    error
	lastID string
}

func (s *stubChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	s.lastID = accessID
	return s.ok, s.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "careerlink-test", ExpirationMinutes: 10}
}

func mintToken(t *testing.T, cfg config.JWTConfig, userType enums.UserType, complete bool) (string, uuid.UUID, string) {
	t.Helper()
	userID := uuid.New()
	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:          userID,
		UserType:        userType,
		ProfileComplete: complete,
		JTI:             accessID,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	return token, userID, accessID
}

func TestAuthSeedsContext(t *testing.T) {
	cfg := testJWTConfig()
	checker := &stubChecker{ok: true}
	token, userID, accessID := mintToken(t, cfg, enums.UserTypeJobSeeker, true)

	var gotID uuid.UUID
	var gotType string
	var gotComplete bool
	var gotAccessID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
		gotType = UserTypeFromContext(r.Context())
		gotComplete = ProfileCompleteFromContext(r.Context())
		gotAccessID = AccessIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	Auth(cfg, checker, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if gotID != userID {
		t.Fatalf("expected user id %s got %s", userID, gotID)
	}
	if gotType != string(enums.UserTypeJobSeeker) {
		t.Fatalf("unexpected user type %q", gotType)
	}
	if !gotComplete {
		t.Fatal("expected profile_complete claim to be seeded")
	}
	if gotAccessID != accessID {
		t.Fatalf("expected access id %s got %s", accessID, gotAccessID)
	}
	if checker.lastID != accessID {
		t.Fatalf("expected session check for %s got %s", accessID, checker.lastID)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	cfg := testJWTConfig()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	Auth(cfg, &stubChecker{ok: true}, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := testJWTConfig()
	token, _, _ := mintToken(t, cfg, enums.UserTypeEmployer, true)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	Auth(cfg, &stubChecker{ok: false}, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	cfg := testJWTConfig()
	var sawUser bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawUser = UserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	OptionalAuth(cfg, &stubChecker{ok: true}, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if sawUser {
		t.Fatal("anonymous request should not carry a user id")
	}
}

func TestOptionalAuthRejectsBadToken(t *testing.T) {
	cfg := testJWTConfig()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	OptionalAuth(cfg, &stubChecker{ok: true}, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestRequireUserType(t *testing.T) {
	var ran bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserType(req.Context(), string(enums.UserTypeJobSeeker)))
	rec := httptest.NewRecorder()
	RequireUserType(enums.UserTypeEmployer, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
	if ran {
		t.Fatal("handler should not run for mismatched role")
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserType(req.Context(), string(enums.UserTypeEmployer)))
	RequireUserType(enums.UserTypeEmployer, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !ran {
		t.Fatalf("expected handler to run, status %d", rec.Code)
	}
}
