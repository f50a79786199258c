package models

import (
	"time"

	dbtypes "github.com/careerlink-app/careerlink-backend/pkg/db/types"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job is an employer-owned posting. EmployerID never changes after creation;
// ApplicantCount is only mutated through an atomic SQL increment.
type Job struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EmployerID  uuid.UUID       `gorm:"column:employer_id;type:uuid;not null;index"`
	CompanyName string          `gorm:"column:company_name;not null"`
	Title       string          `gorm:"column:title;not null"`
	Location    string          `gorm:"column:location;not null"`
	Category    string          `gorm:"column:category;not null"`
	EmploymentType  string      `gorm:"column:employment_type;not null"`
	ExperienceLevel string      `gorm:"column:experience_level;not null"`
	Salary      string          `gorm:"column:salary;not null"`
	Description string          `gorm:"column:description;not null"`

	Responsibilities dbtypes.StringArray `gorm:"column:responsibilities;type:text;not null"`
	Qualifications   dbtypes.StringArray `gorm:"column:qualifications;type:text;not null"`
	Benefits         dbtypes.StringArray `gorm:"column:benefits;type:text;not null"`

	Status         enums.JobStatus `gorm:"column:status;not null;default:'active';index"`
	ApplicantCount int             `gorm:"column:applicant_count;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index:idx_jobs_created_at,sort:desc"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an ID when the database cannot, e.g. under SQLite.
func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
