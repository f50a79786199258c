package auth

import (
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID          uuid.UUID
	UserType        enums.UserType
	ProfileComplete bool
	JTI             string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID          uuid.UUID      `json:"user_id"`
	UserType        enums.UserType `json:"user_type"`
	ProfileComplete bool           `json:"profile_complete"`
	jwt.RegisteredClaims
}
