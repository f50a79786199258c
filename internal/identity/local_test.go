package identity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/careerlink-app/careerlink-backend/internal/profiles"
	pkgauth "github.com/careerlink-app/careerlink-backend/pkg/auth"
	"github.com/careerlink-app/careerlink-backend/pkg/auth/session"
	"github.com/careerlink-app/careerlink-backend/pkg/config"
	"github.com/careerlink-app/careerlink-backend/pkg/db"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubSessionManager struct {
	sessions   map[string]string
	nextSeq    int
	failGen    bool
	failRevoke bool
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{sessions: map[string]string{}}
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	if s.failGen {
		return "", fmt.Errorf("redis down")
	}
	s.nextSeq++
	token := fmt.Sprintf("refresh-%d", s.nextSeq)
	s.sessions[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.sessions[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.sessions, oldAccessID)
	s.nextSeq++
	newAccessID := fmt.Sprintf("access-%d", s.nextSeq)
	newToken := fmt.Sprintf("refresh-%d", s.nextSeq)
	s.sessions[newAccessID] = newToken
	return newAccessID, newToken, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	if s.failRevoke {
		return fmt.Errorf("redis down")
	}
	delete(s.sessions, accessID)
	return nil
}

func setupIdentityTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	usersSchema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	profilesSchema := `
CREATE TABLE IF NOT EXISTS user_profiles (
  user_id TEXT PRIMARY KEY,
  user_type TEXT NOT NULL DEFAULT 'unset',
  profile_complete INTEGER NOT NULL DEFAULT 0,
  first_name TEXT,
  last_name TEXT,
  phone TEXT,
  location TEXT,
  cv_url TEXT,
  company_name TEXT,
  company_website TEXT,
  logo_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(usersSchema).Error)
	require.NoError(t, conn.Exec(profilesSchema).Error)
	return conn
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "careerlink-test",
		ExpirationMinutes: 15,
	}
}

func newTestProvider(t *testing.T, conn *gorm.DB, sessions *stubSessionManager) *LocalProvider {
	t.Helper()
	provider, err := NewLocalProvider(LocalProviderParams{
		DB:             db.FromConn(conn),
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{MinLength: 8},
	})
	require.NoError(t, err)
	return provider
}

func TestSignUpCreatesAccountAndProfile(t *testing.T) {
	conn := setupIdentityTestDB(t)
	provider := newTestProvider(t, conn, newStubSessionManager())
	ctx := context.Background()

	var observed []*Identity
	provider.OnIdentityChanged(func(identity *Identity) {
		observed = append(observed, identity)
	})

	result, err := provider.SignUp(ctx, SignUpRequest{
		Email:    "Hire@Example.com ",
		Password: "Str0ngPass",
		UserType: enums.UserTypeEmployer,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "hire@example.com", result.User.Email)
	assert.Equal(t, enums.UserTypeEmployer, result.Profile.UserType)
	assert.False(t, result.Profile.ProfileComplete)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, enums.UserTypeEmployer, claims.UserType)
	assert.False(t, claims.ProfileComplete)

	require.Len(t, observed, 1)
	require.NotNil(t, observed[0])
	assert.Equal(t, result.User.ID, observed[0].UserID)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	conn := setupIdentityTestDB(t)
	provider := newTestProvider(t, conn, newStubSessionManager())
	ctx := context.Background()

	req := SignUpRequest{Email: "hire@example.com", Password: "Str0ngPass", UserType: enums.UserTypeEmployer}
	_, err := provider.SignUp(ctx, req)
	require.NoError(t, err)

	req.UserType = enums.UserTypeJobSeeker
	_, err = provider.SignUp(ctx, req)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDuplicateIdentity))
}

func TestSignUpWeakPassword(t *testing.T) {
	conn := setupIdentityTestDB(t)
	provider := newTestProvider(t, conn, newStubSessionManager())

	_, err := provider.SignUp(context.Background(), SignUpRequest{
		Email:    "hire@example.com",
		Password: "short",
		UserType: enums.UserTypeEmployer,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeWeakCredential))
}

func TestSignUpInvalidUserType(t *testing.T) {
	conn := setupIdentityTestDB(t)
	provider := newTestProvider(t, conn, newStubSessionManager())

	_, err := provider.SignUp(context.Background(), SignUpRequest{
		Email:    "hire@example.com",
		Password: "Str0ngPass",
		UserType: enums.UserType("admin"),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestSignUpSessionStoreDown(t *testing.T) {
	conn := setupIdentityTestDB(t)
	sessions := newStubSessionManager()
	sessions.failGen = true
	provider := newTestProvider(t, conn, sessions)

	_, err := provider.SignUp(context.Background(), SignUpRequest{
		Email:    "hire@example.com",
		Password: "Str0ngPass",
		UserType: enums.UserTypeEmployer,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}

func TestSignInWrongPassword(t *testing.T) {
	conn := setupIdentityTestDB(t)
	provider := newTestProvider(t, conn, newStubSessionManager())
	ctx := context.Background()

	_, err := provider.SignUp(ctx, SignUpRequest{
		Email:    "hire@example.com",
		Password: "Str0ngPass",
		UserType: enums.UserTypeEmployer,
	})
	require.NoError(t, err)

	_, err = provider.SignIn(ctx, SignInRequest{Email: "hire@example.com", Password: "WrongPass1"})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))

	_, err = provider.SignIn(ctx, SignInRequest{Email: "nobody@example.com", Password: "Str0ngPass"})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))
}

func TestSignInReflectsCompletedProfile(t *testing.T) {
	conn := setupIdentityTestDB(t)
	provider := newTestProvider(t, conn, newStubSessionManager())
	ctx := context.Background()

	signedUp, err := provider.SignUp(ctx, SignUpRequest{
		Email:    "hire@example.com",
		Password: "Str0ngPass",
		UserType: enums.UserTypeEmployer,
	})
	require.NoError(t, err)

	profileSvc, err := profiles.NewService(profiles.ServiceParams{DB: db.FromConn(conn)})
	require.NoError(t, err)
	_, err = profileSvc.Complete(ctx, signedUp.User.ID, profiles.CompleteProfileRequest{CompanyName: "Acme Hiring"})
	require.NoError(t, err)

	result, err := provider.SignIn(ctx, SignInRequest{Email: "hire@example.com", Password: "Str0ngPass"})
	require.NoError(t, err)
	assert.True(t, result.Profile.ProfileComplete)
	require.NotNil(t, result.Identity)
	assert.True(t, result.Identity.ProfileComplete)
	require.NotNil(t, result.User.LastLoginAt)
	assert.WithinDuration(t, time.Now().UTC(), *result.User.LastLoginAt, time.Minute)
}

func TestRefreshRotatesSession(t *testing.T) {
	conn := setupIdentityTestDB(t)
	provider := newTestProvider(t, conn, newStubSessionManager())
	ctx := context.Background()

	signedUp, err := provider.SignUp(ctx, SignUpRequest{
		Email:    "hire@example.com",
		Password: "Str0ngPass",
		UserType: enums.UserTypeEmployer,
	})
	require.NoError(t, err)

	refreshed, err := provider.Refresh(ctx, signedUp.AccessToken, signedUp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, signedUp.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, signedUp.User.ID, refreshed.User.ID)

	// The old pair is burned after rotation.
	_, err = provider.Refresh(ctx, signedUp.AccessToken, signedUp.RefreshToken)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))
}

func TestSignOutNotifiesNilIdentity(t *testing.T) {
	conn := setupIdentityTestDB(t)
	sessions := newStubSessionManager()
	provider := newTestProvider(t, conn, sessions)
	ctx := context.Background()

	var observed []*Identity
	unsubscribe := provider.OnIdentityChanged(func(identity *Identity) {
		observed = append(observed, identity)
	})

	require.NoError(t, provider.SignOut(ctx, "access-1"))
	require.Len(t, observed, 1)
	assert.Nil(t, observed[0])

	unsubscribe()
	require.NoError(t, provider.SignOut(ctx, "access-2"))
	assert.Len(t, observed, 1)
}

func TestSignOutClearsIdentityWhenRevocationFails(t *testing.T) {
	conn := setupIdentityTestDB(t)
	sessions := newStubSessionManager()
	provider := newTestProvider(t, conn, sessions)
	ctx := context.Background()

	var observed []*Identity
	provider.OnIdentityChanged(func(identity *Identity) {
		observed = append(observed, identity)
	})

	signedUp, err := provider.SignUp(ctx, SignUpRequest{
		Email:    "hire@example.com",
		Password: "Str0ngPass",
		UserType: enums.UserTypeEmployer,
	})
	require.NoError(t, err)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), signedUp.AccessToken)
	require.NoError(t, err)

	sessions.failRevoke = true
	err = provider.SignOut(ctx, claims.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))

	// Sign-up then sign-out: listeners must end on nil even though
	// revocation never reached the store.
	require.Len(t, observed, 2)
	require.NotNil(t, observed[0])
	assert.Nil(t, observed[1])
}
