package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/careerlink-app/careerlink-backend/internal/profiles"
	"github.com/careerlink-app/careerlink-backend/pkg/db"
	"github.com/careerlink-app/careerlink-backend/pkg/db/models"
	dbtypes "github.com/careerlink-app/careerlink-backend/pkg/db/types"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
	"github.com/careerlink-app/careerlink-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the jobs controller.
type Service interface {
	Search(ctx context.Context, filters SearchFilters) (*SearchResult, error)
	Post(ctx context.Context, employerID uuid.UUID, req PostJobRequest) (*JobDTO, error)
	Get(ctx context.Context, jobID uuid.UUID) (*JobDTO, error)
	ListEmployerJobs(ctx context.Context, employerID uuid.UUID) ([]JobDTO, error)
	Close(ctx context.Context, employerID, jobID uuid.UUID) (*JobDTO, error)
}

type service struct {
	db *db.Client
}

// ServiceParams bundles the dependencies required to build a jobs service.
type ServiceParams struct {
	DB *db.Client
}

// NewService constructs a jobs service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: params.DB}, nil
}

func (s *service) Search(ctx context.Context, filters SearchFilters) (*SearchResult, error) {
	cursor, err := pagination.ParseCursor(filters.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(filters.Page.Limit)

	rows, err := NewRepository(s.db.DB()).Search(ctx, filters, cursor, pagination.LimitWithBuffer(filters.Page.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search jobs")
	}

	page, hasMore := pagination.TrimPage(rows, limit)
	result := &SearchResult{
		Jobs:    make([]JobDTO, 0, len(page)),
		HasMore: hasMore,
	}
	for i := range page {
		result.Jobs = append(result.Jobs, *FromModel(&page[i]))
	}
	if hasMore {
		last := page[len(page)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (s *service) Post(ctx context.Context, employerID uuid.UUID, req PostJobRequest) (*JobDTO, error) {
	req, details := normalizePostJob(req)
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing or invalid job fields").WithDetails(details)
	}

	profile, err := profiles.NewRepository(s.db.DB()).FindByUserID(ctx, employerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employer profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup employer profile")
	}
	companyName := ""
	if profile.CompanyName != nil {
		companyName = *profile.CompanyName
	}

	job := &models.Job{
		EmployerID:       employerID,
		CompanyName:      companyName,
		Title:            req.Title,
		Location:         req.Location,
		Category:         req.Category,
		EmploymentType:   req.EmploymentType,
		ExperienceLevel:  req.ExperienceLevel,
		Salary:           req.Salary,
		Description:      req.Description,
		Responsibilities: dbtypes.StringArray(req.Responsibilities),
		Qualifications:   dbtypes.StringArray(req.Qualifications),
		Benefits:         dbtypes.StringArray(req.Benefits),
		Status:           enums.JobStatusActive,
		ApplicantCount:   0,
	}
	if err := NewRepository(s.db.DB()).Create(ctx, job); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create job")
	}
	return FromModel(job), nil
}

func (s *service) Get(ctx context.Context, jobID uuid.UUID) (*JobDTO, error) {
	job, err := NewRepository(s.db.DB()).FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup job")
	}
	return FromModel(job), nil
}

// ListEmployerJobs annotates each posting with the live applicant count, the
// authoritative figure for display.
func (s *service) ListEmployerJobs(ctx context.Context, employerID uuid.UUID) ([]JobDTO, error) {
	rows, err := NewRepository(s.db.DB()).ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employer jobs")
	}

	out := make([]JobDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModelWithLiveCount(&rows[i].Job, rows[i].LiveApplicantCount))
	}
	return out, nil
}

func (s *service) Close(ctx context.Context, employerID, jobID uuid.UUID) (*JobDTO, error) {
	repo := NewRepository(s.db.DB())
	job, err := repo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup job")
	}
	if job.EmployerID != employerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "job belongs to another employer")
	}
	if job.Status == enums.JobStatusClosed {
		return FromModel(job), nil
	}

	if err := repo.UpdateStatus(ctx, jobID, enums.JobStatusClosed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "close job")
	}
	job.Status = enums.JobStatusClosed
	return FromModel(job), nil
}

func normalizePostJob(req PostJobRequest) (PostJobRequest, map[string]string) {
	details := map[string]string{}

	req.Title = requireField(details, "title", req.Title)
	req.Location = requireField(details, "location", req.Location)
	req.Category = requireField(details, "category", req.Category)
	req.EmploymentType = requireField(details, "employment_type", req.EmploymentType)
	req.ExperienceLevel = requireField(details, "experience_level", req.ExperienceLevel)
	req.Salary = requireField(details, "salary", req.Salary)
	req.Description = requireField(details, "description", req.Description)

	req.Responsibilities = requireEntries(details, "responsibilities", req.Responsibilities)
	req.Qualifications = requireEntries(details, "qualifications", req.Qualifications)
	req.Benefits = requireEntries(details, "benefits", req.Benefits)

	return req, details
}

func requireField(details map[string]string, name, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		details[name] = "required"
	}
	return trimmed
}

// requireEntries drops blank entries and demands at least one survivor.
func requireEntries(details map[string]string, name string, values []string) []string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		details[name] = "at least one non-empty entry required"
	}
	return kept
}
