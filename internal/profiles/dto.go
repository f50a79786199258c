package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/careerlink-app/careerlink-backend/pkg/db/models"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
)

// ProfileDTO is the transport shape for a user's role and completion state.
type ProfileDTO struct {
	UserID          uuid.UUID      `json:"user_id"`
	UserType        enums.UserType `json:"user_type"`
	ProfileComplete bool           `json:"profile_complete"`

	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	CVURL     *string `json:"cv_url,omitempty"`

	CompanyName    *string `json:"company_name,omitempty"`
	CompanyWebsite *string `json:"company_website,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompleteProfileRequest carries the role-specific fields needed to finish
// onboarding. Which fields are required depends on the caller's user type.
type CompleteProfileRequest struct {
	// Job seeker fields.
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	Location  string  `json:"location"`
	CVURL     *string `json:"cv_url,omitempty"`

	// Employer fields.
	CompanyName    string  `json:"company_name"`
	CompanyWebsite *string `json:"company_website,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
}

func FromModel(p *models.UserProfile) *ProfileDTO {
	if p == nil {
		return nil
	}

	return &ProfileDTO{
		UserID:          p.UserID,
		UserType:        p.UserType,
		ProfileComplete: p.ProfileComplete,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Phone:           p.Phone,
		Location:        p.Location,
		CVURL:           p.CVURL,
		CompanyName:     p.CompanyName,
		CompanyWebsite:  p.CompanyWebsite,
		LogoURL:         p.LogoURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
