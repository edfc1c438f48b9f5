package services

import (
	"errors"
	"time"

	"github.com/almhq/license-manager/internal/apperrors"
	"github.com/almhq/license-manager/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// reviewTargets are the only statuses an administrator may move a record to.
// Re-submission back to draft or submitted is not a supported transition.
var reviewTargets = map[string]bool{
	models.StatusUnderReview: true,
	models.StatusApproved:    true,
	models.StatusRejected:    true,
}

// reviewSources are the statuses a review action may start from. Draft
// records have not been handed over yet; approved/rejected are terminal.
var reviewSources = map[string]bool{
	models.StatusSubmitted:   true,
	models.StatusUnderReview: true,
}

// WorkflowService owns the application status state machine. Status is the
// one admin-authoritative mutation path, kept apart from the generic update
// so owner-editable fields can never silently alter review state.
type WorkflowService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewWorkflowService(db *gorm.DB, log *zap.Logger) *WorkflowService {
	return &WorkflowService{DB: db, Log: log}
}

// Submit hands a draft over for review (draft -> submitted). Owner only.
func (s *WorkflowService) Submit(id uint, caller *models.User) (*models.Application, error) {
	var app models.Application
	if err := s.DB.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application")
		}
		return nil, err
	}
	if err := requireOwner(caller, app.UserID); err != nil {
		return nil, err
	}
	if app.Status != models.StatusDraft {
		return nil, apperrors.InvalidTransition("only draft applications can be submitted")
	}

	app.Status = models.StatusSubmitted
	if err := s.DB.Model(&app).Update("status", models.StatusSubmitted).Error; err != nil {
		return nil, err
	}
	s.Log.Info("application submitted", zap.Uint("id", app.ID), zap.String("reference", app.ReferenceNumber))
	return &app, nil
}

// UpdateStatus moves an application to under_review, approved or rejected
// and records the review audit trail. Administrator only; a single row write.
func (s *WorkflowService) UpdateStatus(id uint, newStatus, comments string, reviewer *models.User) (*models.Application, error) {
	if err := requireAdministrator(reviewer); err != nil {
		return nil, err
	}
	if !reviewTargets[newStatus] {
		return nil, apperrors.InvalidTransition("status must be one of under_review, approved, rejected")
	}

	var app models.Application
	if err := s.DB.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application")
		}
		return nil, err
	}
	if !reviewSources[app.Status] {
		return nil, apperrors.InvalidTransition("application in status " + app.Status + " cannot be reviewed")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":          newStatus,
		"review_comments": comments,
		"reviewed_by_id":  reviewer.ID,
		"reviewed_at":     now,
	}
	if err := s.DB.Model(&app).Updates(updates).Error; err != nil {
		return nil, err
	}

	app.Status = newStatus
	app.ReviewComments = comments
	app.ReviewedByID = &reviewer.ID
	app.ReviewedAt = &now

	s.Log.Info("application status updated",
		zap.Uint("id", app.ID),
		zap.String("status", newStatus),
		zap.Uint("reviewer", reviewer.ID),
	)
	return &app, nil
}
