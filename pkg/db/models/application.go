package models

import (
	"time"

	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application is a job seeker's claim against a Job. The composite unique
// index is the true enforcement point for the one-application-per-job
// invariant; service-level pre-checks are advisory only.
type Application struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	JobID  uuid.UUID `gorm:"column:job_id;type:uuid;not null;uniqueIndex:uniq_applications_job_user"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uniq_applications_job_user"`

	// Snapshot fields captured at submission time.
	JobTitle    string `gorm:"column:job_title;not null"`
	CompanyName string `gorm:"column:company_name;not null"`
	UserName    string `gorm:"column:user_name;not null"`
	UserEmail   string `gorm:"column:user_email;not null"`

	Status enums.ApplicationStatus `gorm:"column:status;not null;default:'pending'"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an ID when the database cannot, e.g. under SQLite.
func (a *Application) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
