package services

import (
	"errors"

	"github.com/almhq/license-manager/internal/apperrors"
	"github.com/almhq/license-manager/internal/dtos"
	"github.com/almhq/license-manager/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ChecklistService owns the per-application triaging worksheet. It is a
// free-form administrative record: no field is required and nothing here
// gates a status transition.
type ChecklistService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewChecklistService(db *gorm.DB, log *zap.Logger) *ChecklistService {
	return &ChecklistService{DB: db, Log: log}
}

// Save upserts the checklist for an application. Administrator only.
func (s *ChecklistService) Save(applicationID uint, caller *models.User, req *dtos.SaveChecklistRequest) (*models.TriagingChecklist, error) {
	if err := requireAdministrator(caller); err != nil {
		return nil, err
	}
	if err := s.ensureApplication(applicationID); err != nil {
		return nil, err
	}

	var checklist models.TriagingChecklist
	err := s.DB.Where("application_id = ?", applicationID).First(&checklist).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		checklist = models.TriagingChecklist{ApplicationID: applicationID}
	case err != nil:
		return nil, err
	}

	applyChecklist(req, &checklist)
	if err := s.DB.Save(&checklist).Error; err != nil {
		return nil, err
	}
	s.Log.Info("triaging checklist saved",
		zap.Uint("application_id", applicationID),
		zap.Uint("admin", caller.ID),
	)
	return &checklist, nil
}

// Get returns the checklist, or a zero-value one when the application has
// not been triaged yet. Absence is a valid state, not an error.
func (s *ChecklistService) Get(applicationID uint, caller *models.User) (*models.TriagingChecklist, error) {
	if err := requireAdministrator(caller); err != nil {
		return nil, err
	}
	if err := s.ensureApplication(applicationID); err != nil {
		return nil, err
	}

	var checklist models.TriagingChecklist
	err := s.DB.Where("application_id = ?", applicationID).First(&checklist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.TriagingChecklist{ApplicationID: applicationID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

func (s *ChecklistService) ensureApplication(applicationID uint) error {
	var count int64
	if err := s.DB.Model(&models.Application{}).Where("id = ?", applicationID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NotFound("application")
	}
	return nil
}

// applyChecklist merges non-nil request fields into the record.
func applyChecklist(req *dtos.SaveChecklistRequest, c *models.TriagingChecklist) {
	if req.Recommendation != nil {
		c.Recommendation = req.Recommendation
	}
	if req.DecisionNotes != nil {
		c.DecisionNotes = req.DecisionNotes
	}
	if req.LicenseClass != nil {
		c.LicenseClass = req.LicenseClass
	}
	if req.ValidityMonths != nil {
		c.ValidityMonths = req.ValidityMonths
	}
	if req.Conditions != nil {
		c.Conditions = req.Conditions
	}
	if req.RegistrationNumber != nil {
		c.RegistrationNumber = req.RegistrationNumber
	}
	if req.BusinessNature != nil {
		c.BusinessNature = req.BusinessNature
	}
	if req.OperatingAddress != nil {
		c.OperatingAddress = req.OperatingAddress
	}
	if req.ContactPerson != nil {
		c.ContactPerson = req.ContactPerson
	}
	if req.ContactPhone != nil {
		c.ContactPhone = req.ContactPhone
	}
	if req.YearsOperating != nil {
		c.YearsOperating = req.YearsOperating
	}
	if req.BranchCount != nil {
		c.BranchCount = req.BranchCount
	}
	if req.TurnoverDeclared != nil {
		c.TurnoverDeclared = req.TurnoverDeclared
	}
	if req.DocumentsComplete != nil {
		c.DocumentsComplete = req.DocumentsComplete
	}
	if req.InsuranceValid != nil {
		c.InsuranceValid = req.InsuranceValid
	}
	if req.TrainingCertified != nil {
		c.TrainingCertified = req.TrainingCertified
	}
	if req.FeePaid != nil {
		c.FeePaid = req.FeePaid
	}
	if req.PremisesInspected != nil {
		c.PremisesInspected = req.PremisesInspected
	}
	if req.WorkforceVerified != nil {
		c.WorkforceVerified = req.WorkforceVerified
	}
	if req.RecordsCompliant != nil {
		c.RecordsCompliant = req.RecordsCompliant
	}
	if req.NoOutstandingViolations != nil {
		c.NoOutstandingViolations = req.NoOutstandingViolations
	}
	if req.DeclarationSigned != nil {
		c.DeclarationSigned = req.DeclarationSigned
	}
	if req.InterviewCompleted != nil {
		c.InterviewCompleted = req.InterviewCompleted
	}
	if req.SafetyOfficerAppointed != nil {
		c.SafetyOfficerAppointed = req.SafetyOfficerAppointed
	}
	if req.ReviewerRemarks != nil {
		c.ReviewerRemarks = req.ReviewerRemarks
	}
}
