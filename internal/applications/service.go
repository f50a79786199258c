package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/careerlink-app/careerlink-backend/internal/jobs"
	"github.com/careerlink-app/careerlink-backend/internal/profiles"
	"github.com/careerlink-app/careerlink-backend/internal/users"
	"github.com/careerlink-app/careerlink-backend/pkg/db"
	"github.com/careerlink-app/careerlink-backend/pkg/db/models"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the applications controller.
type Service interface {
	Apply(ctx context.Context, applicantID, jobID uuid.UUID) (*ApplicationDTO, error)
	ListForJob(ctx context.Context, jobID, callerID uuid.UUID) ([]ApplicationDTO, error)
	ListForApplicant(ctx context.Context, applicantID uuid.UUID) ([]ApplicationDTO, error)
	ListForEmployer(ctx context.Context, employerID uuid.UUID) ([]ApplicationDTO, error)
	UpdateStatus(ctx context.Context, applicationID uuid.UUID, status enums.ApplicationStatus, callerID uuid.UUID) (*ApplicationDTO, error)
}

type service struct {
	db *db.Client
}

// ServiceParams bundles the dependencies required to build an applications service.
type ServiceParams struct {
	DB *db.Client
}

// NewService constructs an applications service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: params.DB}, nil
}

// Apply submits an application. The insert and the counter increment are two
// separate store writes on purpose: a failed increment after a committed
// insert is reported as a partial apply so the caller can re-drive the
// counter instead of silently under-counting.
func (s *service) Apply(ctx context.Context, applicantID, jobID uuid.UUID) (*ApplicationDTO, error) {
	conn := s.db.DB()

	profile, err := profiles.NewRepository(conn).FindByUserID(ctx, applicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "applicant profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup applicant profile")
	}
	if profile.UserType != enums.UserTypeJobSeeker {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only job seekers may apply")
	}

	user, err := users.NewRepository(conn).FindByID(ctx, applicantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup applicant")
	}

	jobRepo := jobs.NewRepository(conn)
	job, err := jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup job")
	}
	if job.Status != enums.JobStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job is no longer accepting applications")
	}

	repo := NewRepository(conn)

	// Advisory fast path; the unique index is the real enforcement.
	if _, err := repo.FindByJobAndUser(ctx, jobID, applicantID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDuplicateApplication, "already applied to this job")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing application")
	}

	application := &models.Application{
		JobID:       jobID,
		UserID:      applicantID,
		JobTitle:    job.Title,
		CompanyName: job.CompanyName,
		UserName:    profile.DisplayName(),
		UserEmail:   user.Email,
		Status:      enums.ApplicationStatusPending,
	}
	if err := repo.Create(ctx, application); err != nil {
		if db.IsUniqueViolation(err, "uniq_applications_job_user") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateApplication, "already applied to this job")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create application")
	}

	if err := jobRepo.IncrementApplicantCount(ctx, jobID, 1); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePartialApply, err, "application recorded but counter increment failed").
			WithDetails(map[string]string{"application_id": application.ID.String()})
	}

	return FromModel(application), nil
}

func (s *service) ListForJob(ctx context.Context, jobID, callerID uuid.UUID) ([]ApplicationDTO, error) {
	job, err := jobs.NewRepository(s.db.DB()).FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup job")
	}
	if job.EmployerID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "job belongs to another employer")
	}

	rows, err := NewRepository(s.db.DB()).ListByJob(ctx, jobID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list applications")
	}
	return fromModels(rows), nil
}

func (s *service) ListForApplicant(ctx context.Context, applicantID uuid.UUID) ([]ApplicationDTO, error) {
	rows, err := NewRepository(s.db.DB()).ListByUser(ctx, applicantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list applications")
	}
	return fromModels(rows), nil
}

func (s *service) ListForEmployer(ctx context.Context, employerID uuid.UUID) ([]ApplicationDTO, error) {
	rows, err := NewRepository(s.db.DB()).ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employer applications")
	}
	return fromModels(rows), nil
}

func (s *service) UpdateStatus(ctx context.Context, applicationID uuid.UUID, status enums.ApplicationStatus, callerID uuid.UUID) (*ApplicationDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid application status")
	}

	repo := NewRepository(s.db.DB())
	application, err := repo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup application")
	}

	job, err := jobs.NewRepository(s.db.DB()).FindByID(ctx, application.JobID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup job")
	}
	if job.EmployerID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "application belongs to another employer's job")
	}

	if !application.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidTransition,
			fmt.Sprintf("cannot move application from %s to %s", application.Status, status))
	}

	if err := repo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update application status")
	}
	application.Status = status
	return FromModel(application), nil
}
