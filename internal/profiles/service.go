package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/careerlink-app/careerlink-backend/pkg/db"
	"github.com/careerlink-app/careerlink-backend/pkg/db/models"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the profile controller.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	Complete(ctx context.Context, userID uuid.UUID, req CompleteProfileRequest) (*ProfileDTO, error)
}

type service struct {
	db *db.Client
}

// ServiceParams bundles the dependencies required to build a profile service.
type ServiceParams struct {
	DB *db.Client
}

// NewService constructs a profile service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: params.DB}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	repo := NewRepository(s.db.DB())
	profile, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
	}
	return FromModel(profile), nil
}

// Complete flips the profile to its finished state exactly once. The required
// fields depend on the user type fixed at registration.
func (s *service) Complete(ctx context.Context, userID uuid.UUID, req CompleteProfileRequest) (*ProfileDTO, error) {
	var completed *models.UserProfile

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		profile, err := repo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
		}

		if profile.ProfileComplete {
			return pkgerrors.New(pkgerrors.CodeValidation, "profile already complete")
		}

		switch profile.UserType {
		case enums.UserTypeJobSeeker:
			if err := applySeekerFields(profile, req); err != nil {
				return err
			}
		case enums.UserTypeEmployer:
			if err := applyEmployerFields(profile, req); err != nil {
				return err
			}
		default:
			return pkgerrors.New(pkgerrors.CodeValidation, "user type is not set")
		}

		profile.ProfileComplete = true
		if err := repo.Save(ctx, profile); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save profile")
		}

		completed = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(completed), nil
}

func applySeekerFields(profile *models.UserProfile, req CompleteProfileRequest) error {
	details := map[string]string{}
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	phone := strings.TrimSpace(req.Phone)
	location := strings.TrimSpace(req.Location)

	if firstName == "" {
		details["first_name"] = "required"
	}
	if lastName == "" {
		details["last_name"] = "required"
	}
	if phone == "" {
		details["phone"] = "required"
	}
	if location == "" {
		details["location"] = "required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required profile fields").WithDetails(details)
	}

	profile.FirstName = &firstName
	profile.LastName = &lastName
	profile.Phone = &phone
	profile.Location = &location
	profile.CVURL = trimmedOrNil(req.CVURL)
	return nil
}

func applyEmployerFields(profile *models.UserProfile, req CompleteProfileRequest) error {
	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required profile fields").
			WithDetails(map[string]string{"company_name": "required"})
	}

	profile.CompanyName = &companyName
	profile.CompanyWebsite = trimmedOrNil(req.CompanyWebsite)
	profile.LogoURL = trimmedOrNil(req.LogoURL)
	return nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
