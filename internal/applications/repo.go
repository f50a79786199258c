package applications

import (
	"context"

	"github.com/careerlink-app/careerlink-backend/pkg/db/models"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes application persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an applications repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new application. The composite unique index on
// (job_id, user_id) rejects duplicates at the store layer.
func (r *Repository) Create(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

// FindByID loads an application by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).First(&application, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// FindByJobAndUser loads the application for a (job, applicant) pair.
func (r *Repository) FindByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// ListByJob returns a job's applications, newest first.
func (r *Repository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	var rows []models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByUser returns an applicant's applications, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error) {
	var rows []models.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByEmployer returns every application against the employer's jobs,
// newest first.
func (r *Repository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]models.Application, error) {
	var rows []models.Application
	err := r.db.WithContext(ctx).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ?", employerID).
		Order("applications.created_at DESC").
		Order("applications.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus writes the review verdict.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ApplicationStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}
