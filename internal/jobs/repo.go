package jobs

import (
	"context"
	"strings"

	"github.com/careerlink-app/careerlink-backend/pkg/db/models"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	"github.com/careerlink-app/careerlink-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes job persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a jobs repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// JobWithLiveCount pairs a row with the count of application rows that
// reference it.
type JobWithLiveCount struct {
	models.Job
	LiveApplicantCount int `gorm:"column:live_applicant_count"`
}

// Create inserts a new posting.
func (r *Repository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID loads a posting by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Search returns active postings matching the conjunctive filters, newest
// first. Free-text tokens must each match at least one of title, company
// name, or description.
func (r *Repository) Search(ctx context.Context, filters SearchFilters, cursor *pagination.Cursor, limit int) ([]models.Job, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("status = ?", enums.JobStatusActive)

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Location != "" {
		query = query.Where("location = ?", filters.Location)
	}
	if filters.EmploymentType != "" {
		query = query.Where("employment_type = ?", filters.EmploymentType)
	}
	if filters.ExperienceLevel != "" {
		query = query.Where("experience_level = ?", filters.ExperienceLevel)
	}

	for _, token := range strings.Fields(strings.ToLower(filters.FreeTextQuery)) {
		pattern := "%" + escapeLike(token) + "%"
		query = query.Where(
			"(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(company_name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')",
			pattern, pattern, pattern,
		)
	}

	if cursor != nil {
		query = query.Where(
			"(created_at < ? OR (created_at = ? AND id < ?))",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Job
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike keeps user-typed % and _ literal inside LIKE patterns.
func escapeLike(token string) string {
	return likeEscaper.Replace(token)
}

// ListByEmployer returns the employer's active postings, newest first, each
// annotated with the live applicant count.
func (r *Repository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]JobWithLiveCount, error) {
	var rows []JobWithLiveCount
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Select("jobs.*, (SELECT COUNT(*) FROM applications WHERE applications.job_id = jobs.id) AS live_applicant_count").
		Where("employer_id = ?", employerID).
		Where("status = ?", enums.JobStatusActive).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// IncrementApplicantCount bumps the stored counter by delta as a single SQL
// update, never read-modify-write.
func (r *Repository) IncrementApplicantCount(ctx context.Context, jobID uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", jobID).
		UpdateColumn("applicant_count", gorm.Expr("applicant_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatus moves a posting between active and closed.
func (r *Repository) UpdateStatus(ctx context.Context, jobID uuid.UUID, status enums.JobStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", jobID).
		UpdateColumn("status", status).Error
}
