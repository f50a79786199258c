package models

import (
	"time"

	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	"github.com/google/uuid"
)

// UserProfile augments an identity with its role and completion state plus the
// role-specific fields the UI shell renders. UserType is fixed at registration
// and never rewritten; ProfileComplete flips to true exactly once.
type UserProfile struct {
	UserID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserType        enums.UserType `gorm:"column:user_type;not null;default:'unset'"`
	ProfileComplete bool           `gorm:"column:profile_complete;not null;default:false"`

	// Job seeker fields.
	FirstName *string `gorm:"column:first_name"`
	LastName  *string `gorm:"column:last_name"`
	Phone     *string `gorm:"column:phone"`
	Location  *string `gorm:"column:location"`
	CVURL     *string `gorm:"column:cv_url"`

	// Employer fields.
	CompanyName    *string `gorm:"column:company_name"`
	CompanyWebsite *string `gorm:"column:company_website"`
	LogoURL        *string `gorm:"column:logo_url"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// DisplayName returns the human-facing name for application snapshots.
func (p UserProfile) DisplayName() string {
	switch {
	case p.UserType == enums.UserTypeEmployer && p.CompanyName != nil:
		return *p.CompanyName
	case p.FirstName != nil && p.LastName != nil:
		return *p.FirstName + " " + *p.LastName
	case p.FirstName != nil:
		return *p.FirstName
	default:
		return ""
	}
}
