package jobs

import (
	"time"

	"github.com/google/uuid"

	"github.com/careerlink-app/careerlink-backend/pkg/db/models"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	"github.com/careerlink-app/careerlink-backend/pkg/pagination"
)

// JobDTO is the transport shape for a posting. ApplicantCount carries the
// stored counter on search results and the live count on employer listings.
type JobDTO struct {
	ID              uuid.UUID       `json:"id"`
	EmployerID      uuid.UUID       `json:"employer_id"`
	CompanyName     string          `json:"company_name"`
	Title           string          `json:"title"`
	Location        string          `json:"location"`
	Category        string          `json:"category"`
	EmploymentType  string          `json:"employment_type"`
	ExperienceLevel string          `json:"experience_level"`
	Salary          string          `json:"salary"`
	Description     string          `json:"description"`

	Responsibilities []string `json:"responsibilities"`
	Qualifications   []string `json:"qualifications"`
	Benefits         []string `json:"benefits"`

	Status         enums.JobStatus `json:"status"`
	ApplicantCount int             `json:"applicant_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostJobRequest carries the employer's input for a new posting. The company
// name is stamped from the employer profile, not the request.
type PostJobRequest struct {
	Title           string   `json:"title" validate:"required"`
	Location        string   `json:"location" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	EmploymentType  string   `json:"employment_type" validate:"required"`
	ExperienceLevel string   `json:"experience_level" validate:"required"`
	Salary          string   `json:"salary" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Responsibilities []string `json:"responsibilities"`
	Qualifications   []string `json:"qualifications"`
	Benefits         []string `json:"benefits"`
}

// SearchFilters are conjunctive; an unset field imposes no constraint.
type SearchFilters struct {
	Category        string `json:"category,omitempty"`
	Location        string `json:"location,omitempty"`
	EmploymentType  string `json:"employment_type,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`
	FreeTextQuery   string `json:"q,omitempty"`

	Page pagination.Params `json:"-"`
}

// SearchResult is one bounded page of matches.
type SearchResult struct {
	Jobs       []JobDTO `json:"jobs"`
	NextCursor string   `json:"next_cursor,omitempty"`
	HasMore    bool     `json:"has_more"`
}

// FromModel maps a row to the transport shape using the stored counter.
func FromModel(j *models.Job) *JobDTO {
	if j == nil {
		return nil
	}
	return fromModel(j, j.ApplicantCount)
}

// FromModelWithLiveCount maps a row using the authoritative live count.
func FromModelWithLiveCount(j *models.Job, liveCount int) *JobDTO {
	if j == nil {
		return nil
	}
	return fromModel(j, liveCount)
}

func fromModel(j *models.Job, applicantCount int) *JobDTO {
	return &JobDTO{
		ID:               j.ID,
		EmployerID:       j.EmployerID,
		CompanyName:      j.CompanyName,
		Title:            j.Title,
		Location:         j.Location,
		Category:         j.Category,
		EmploymentType:   j.EmploymentType,
		ExperienceLevel:  j.ExperienceLevel,
		Salary:           j.Salary,
		Description:      j.Description,
		Responsibilities: append([]string(nil), j.Responsibilities...),
		Qualifications:   append([]string(nil), j.Qualifications...),
		Benefits:         append([]string(nil), j.Benefits...),
		Status:           j.Status,
		ApplicantCount:   applicantCount,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}
