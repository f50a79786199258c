package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/careerlink-app/careerlink-backend/internal/profiles"
	"github.com/careerlink-app/careerlink-backend/internal/users"
	pkgauth "github.com/careerlink-app/careerlink-backend/pkg/auth"
	"github.com/careerlink-app/careerlink-backend/pkg/auth/session"
	"github.com/careerlink-app/careerlink-backend/pkg/config"
	"github.com/careerlink-app/careerlink-backend/pkg/db"
	"github.com/careerlink-app/careerlink-backend/pkg/db/models"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
	"github.com/careerlink-app/careerlink-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// LocalProvider implements Provider against the app's own users table.
type LocalProvider struct {
	db          *db.Client
	session     sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// LocalProviderParams bundles the dependencies for the local credential backend.
type LocalProviderParams struct {
	DB             *db.Client
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewLocalProvider constructs the provider with the given dependencies.
func NewLocalProvider(params LocalProviderParams) (*LocalProvider, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &LocalProvider{
		db:          params.DB,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		listeners:   map[int]Listener{},
	}, nil
}

func (p *LocalProvider) SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if !req.UserType.IsSet() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user_type must be employer or job_seeker")
	}
	if err := security.CheckPasswordPolicy(req.Password, p.passwordCfg); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(req.Password, p.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var (
		user    *models.User
		profile *models.UserProfile
	)
	err = p.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		profileRepo := profiles.NewRepository(tx)

		// Advisory pre-check; the unique index is the real enforcement.
		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeDuplicateIdentity, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}

		created, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "uniq_users_email") {
				return pkgerrors.New(pkgerrors.CodeDuplicateIdentity, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		prof, err := profileRepo.Create(ctx, created.ID, req.UserType)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create profile")
		}

		user = created
		profile = prof
		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.issueTokens(ctx, user, profile, time.Now().UTC())
}

func (p *LocalProvider) SignIn(ctx context.Context, req SignInRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	userRepo := users.NewRepository(p.db.DB())
	user, err := userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	profile, err := profiles.NewRepository(p.db.DB()).FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
	}

	now := time.Now().UTC()
	if err := userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now

	return p.issueTokens(ctx, user, profile, now)
}

func (p *LocalProvider) SignOut(ctx context.Context, accessID string) error {
	// Listeners drop the identity before the revocation call so a dead
	// session store never leaves anyone signed in locally.
	p.notify(nil)
	if err := p.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (p *LocalProvider) Refresh(ctx context.Context, accessToken, refreshToken string) (*AuthResult, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(p.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefreshToken, err := p.session.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	// Reload so the new token carries the current completion state.
	user, err := users.NewRepository(p.db.DB()).FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	profile, err := profiles.NewRepository(p.db.DB()).FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
	}

	newAccessToken, err := pkgauth.MintAccessToken(p.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:          user.ID,
		UserType:        profile.UserType,
		ProfileComplete: profile.ProfileComplete,
		JTI:             newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	result := &AuthResult{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		User:         users.FromModel(user),
		Profile:      profiles.FromModel(profile),
		Identity: &Identity{
			UserID:          user.ID,
			Email:           user.Email,
			UserType:        profile.UserType,
			ProfileComplete: profile.ProfileComplete,
		},
	}
	p.notify(result.Identity)
	return result, nil
}

// OnIdentityChanged registers a listener and returns its unsubscribe func.
func (p *LocalProvider) OnIdentityChanged(listener Listener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = listener
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// NotifyProfileCompleted re-emits the identity after onboarding finishes so
// subscribed controllers pick up the new completion state.
func (p *LocalProvider) NotifyProfileCompleted(identity *Identity) {
	p.notify(identity)
}

// RefreshIdentity reloads the account and re-emits its current identity.
// The profile controller calls this after onboarding mutations.
func (p *LocalProvider) RefreshIdentity(ctx context.Context, userID uuid.UUID) error {
	var user *models.User
	var profile *models.UserProfile
	err := p.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		profileRepo := profiles.NewRepository(tx)

		var err error
		user, err = userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		profile, err = profileRepo.FindByUserID(ctx, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "account not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload identity")
	}

	p.notify(&Identity{
		UserID:          user.ID,
		Email:           user.Email,
		UserType:        profile.UserType,
		ProfileComplete: profile.ProfileComplete,
	})
	return nil
}

func (p *LocalProvider) issueTokens(ctx context.Context, user *models.User, profile *models.UserProfile, now time.Time) (*AuthResult, error) {
	accessID := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(p.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:          user.ID,
		UserType:        profile.UserType,
		ProfileComplete: profile.ProfileComplete,
		JTI:             accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	refreshToken, err := p.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}

	result := &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
		Profile:      profiles.FromModel(profile),
		Identity: &Identity{
			UserID:          user.ID,
			Email:           user.Email,
			UserType:        profile.UserType,
			ProfileComplete: profile.ProfileComplete,
		},
	}
	p.notify(result.Identity)
	return result, nil
}

func (p *LocalProvider) notify(identity *Identity) {
	p.mu.Lock()
	listeners := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()

	for _, l := range listeners {
		l(identity)
	}
}
