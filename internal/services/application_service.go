package services

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/almhq/license-manager/internal/apperrors"
	"github.com/almhq/license-manager/internal/dtos"
	"github.com/almhq/license-manager/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const referenceSuffixChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// referenceAttempts bounds the retry loop on a reference-number collision.
const referenceAttempts = 5

type ApplicationService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewApplicationService(db *gorm.DB, log *zap.Logger) *ApplicationService {
	return &ApplicationService{DB: db, Log: log}
}

// newReferenceNumber produces an ALM-<8 digits>-<4 alphanumeric> identifier.
func newReferenceNumber() string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = referenceSuffixChars[rand.IntN(len(referenceSuffixChars))]
	}
	return fmt.Sprintf("ALM-%08d-%s", rand.IntN(100_000_000), suffix)
}

// Create validates the request, assigns the reference number and persists a
// draft application owned by ownerID.
func (s *ApplicationService) Create(ownerID uint, req *dtos.CreateApplicationRequest) (*models.Application, error) {
	if req.ApplicationType != models.TypeNewApplication && req.ApplicationType != models.TypeRenewalApplication {
		return nil, apperrors.Validation("application_type", "must be new_application or renewal_application")
	}
	if req.LocalWorkforceCount == nil || *req.LocalWorkforceCount < 0 {
		return nil, apperrors.Validation("local_workforce_count", "required and must not be negative")
	}
	if req.ForeignWorkforceCount == nil || *req.ForeignWorkforceCount < 0 {
		return nil, apperrors.Validation("foreign_workforce_count", "required and must not be negative")
	}
	if strings.TrimSpace(req.ServicesDescription) == "" {
		return nil, apperrors.Validation("services_description", "must not be empty")
	}

	app := &models.Application{
		UserID:                ownerID,
		ApplicationType:       req.ApplicationType,
		LocalWorkforceCount:   *req.LocalWorkforceCount,
		ForeignWorkforceCount: *req.ForeignWorkforceCount,
		ContactName:           req.ContactName,
		ContactEmail:          req.ContactEmail,
		ContactPhone:          req.ContactPhone,
		ContactAddress:        req.ContactAddress,
		ServicesDescription:   req.ServicesDescription,
		Status:                models.StatusDraft,
	}

	// The unique index enforces the once-only invariant; a collision just
	// draws a new number.
	var err error
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		app.ReferenceNumber = newReferenceNumber()
		if err = s.DB.Create(app).Error; err == nil {
			s.Log.Info("application created",
				zap.Uint("id", app.ID),
				zap.String("reference", app.ReferenceNumber),
			)
			return app, nil
		}
	}
	return nil, err
}

// Update merges a partial edit into an existing application. Owners may edit
// only while the record is still a draft; administrators may edit at any
// status. Status and review fields never move through here.
func (s *ApplicationService) Update(id uint, caller *models.User, req *dtos.UpdateApplicationRequest) (*models.Application, error) {
	var app models.Application
	if err := s.DB.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application")
		}
		return nil, err
	}

	if err := requireOwnerOrAdministrator(caller, app.UserID); err != nil {
		return nil, err
	}
	if !caller.IsAdministrator() && app.Status != models.StatusDraft {
		return nil, apperrors.Permission("application can no longer be edited by its owner")
	}

	if req.ApplicationType != nil {
		if *req.ApplicationType != models.TypeNewApplication && *req.ApplicationType != models.TypeRenewalApplication {
			return nil, apperrors.Validation("application_type", "must be new_application or renewal_application")
		}
		app.ApplicationType = *req.ApplicationType
	}
	if req.LocalWorkforceCount != nil {
		app.LocalWorkforceCount = *req.LocalWorkforceCount
	}
	if req.ForeignWorkforceCount != nil {
		app.ForeignWorkforceCount = *req.ForeignWorkforceCount
	}
	if req.ContactName != nil {
		app.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		app.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		app.ContactPhone = *req.ContactPhone
	}
	if req.ContactAddress != nil {
		app.ContactAddress = *req.ContactAddress
	}
	if req.ServicesDescription != nil {
		app.ServicesDescription = *req.ServicesDescription
	}

	if err := s.DB.Save(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// Get returns one application with its owner, documents and checklist.
func (s *ApplicationService) Get(id uint, caller *models.User) (*models.Application, error) {
	var app models.Application
	err := s.DB.Preload("User").Preload("Documents").Preload("Checklist").First(&app, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application")
		}
		return nil, err
	}
	if err := requireOwnerOrAdministrator(caller, app.UserID); err != nil {
		return nil, err
	}
	return &app, nil
}

// ListForUser returns a user's own applications, newest first.
func (s *ApplicationService) ListForUser(userID uint) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// ListAll is the administrator listing with optional status, type and
// free-text filters. An empty filter yields everything, newest first.
func (s *ApplicationService) ListAll(caller *models.User, filters dtos.ApplicationFilters) ([]models.Application, error) {
	if err := requireAdministrator(caller); err != nil {
		return nil, err
	}

	q := s.DB.Preload("User").Order("created_at DESC")
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.ApplicationType != "" {
		q = q.Where("application_type = ?", filters.ApplicationType)
	}
	if filters.Search != "" {
		like := "%" + strings.ToLower(filters.Search) + "%"
		q = q.Where(
			"LOWER(reference_number) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(contact_email) LIKE ? OR LOWER(services_description) LIKE ?",
			like, like, like, like,
		)
	}

	var apps []models.Application
	err := q.Find(&apps).Error
	return apps, err
}
