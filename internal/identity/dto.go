package identity

import (
	"github.com/careerlink-app/careerlink-backend/internal/profiles"
	"github.com/careerlink-app/careerlink-backend/internal/users"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
)

// SignUpRequest captures the payload for creating a new account. The user
// type is chosen here and fixed for the lifetime of the account.
type SignUpRequest struct {
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required"`
	UserType enums.UserType `json:"user_type" validate:"required"`
}

// SignInRequest captures the credentials sent to the login endpoint.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult contains the tokens and principal produced by a successful
// sign-up, sign-in, or refresh.
type AuthResult struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	User         *users.UserDTO       `json:"user"`
	Profile      *profiles.ProfileDTO `json:"profile"`

	Identity *Identity `json:"-"`
}
