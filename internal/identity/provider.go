package identity

import (
	"context"

	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	"github.com/google/uuid"
)

// Identity is the authenticated principal observed by the access controller.
// A nil *Identity means signed out.
type Identity struct {
	UserID          uuid.UUID      `json:"user_id"`
	Email           string         `json:"email"`
	UserType        enums.UserType `json:"user_type"`
	ProfileComplete bool           `json:"profile_complete"`
}

// Listener receives identity transitions: a snapshot on sign-in and profile
// completion, nil on sign-out.
type Listener func(identity *Identity)

// Provider abstracts the credential backend. The local provider stores
// accounts itself; the interface leaves room for delegating to an external
// identity service.
type Provider interface {
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error)
	SignIn(ctx context.Context, req SignInRequest) (*AuthResult, error)
	SignOut(ctx context.Context, accessID string) error
	Refresh(ctx context.Context, accessToken, refreshToken string) (*AuthResult, error)

	// OnIdentityChanged registers a listener and returns an unsubscribe func.
	// Listeners are invoked synchronously after each successful transition.
	OnIdentityChanged(listener Listener) func()
}
