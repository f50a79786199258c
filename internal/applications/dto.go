package applications

import (
	"time"

	"github.com/google/uuid"

	"github.com/careerlink-app/careerlink-backend/pkg/db/models"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
)

// ApplicationDTO is the transport shape for one application. The job and
// applicant fields are the snapshot captured at submission time.
type ApplicationDTO struct {
	ID     uuid.UUID `json:"id"`
	JobID  uuid.UUID `json:"job_id"`
	UserID uuid.UUID `json:"user_id"`

	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`

	Status enums.ApplicationStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateStatusRequest carries the employer's review verdict.
type UpdateStatusRequest struct {
	Status enums.ApplicationStatus `json:"status" validate:"required"`
}

func FromModel(a *models.Application) *ApplicationDTO {
	if a == nil {
		return nil
	}
	return &ApplicationDTO{
		ID:          a.ID,
		JobID:       a.JobID,
		UserID:      a.UserID,
		JobTitle:    a.JobTitle,
		CompanyName: a.CompanyName,
		UserName:    a.UserName,
		UserEmail:   a.UserEmail,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func fromModels(rows []models.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
