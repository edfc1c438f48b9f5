package services

import (
	"time"

	"github.com/almhq/license-manager/internal/dtos"
	"github.com/almhq/license-manager/internal/models"
	"gorm.io/gorm"
)

// overdueAfter is how long a pending application may sit before the admin
// dashboard flags it.
const overdueAfter = 5 * 24 * time.Hour

var pendingStatuses = []string{models.StatusSubmitted, models.StatusUnderReview}

// StatsService derives dashboard counts by aggregate query on each call;
// nothing is maintained incrementally.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// ForUser buckets one user's applications by status.
func (s *StatsService) ForUser(userID uint) (*dtos.UserStats, error) {
	stats := &dtos.UserStats{}
	base := func() *gorm.DB {
		return s.DB.Model(&models.Application{}).Where("user_id = ?", userID)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status IN ?", pendingStatuses).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.StatusApproved).Count(&stats.Approved).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.StatusRejected).Count(&stats.Rejected).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.StatusDraft).Count(&stats.Draft).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// ForAdministrator computes the system-wide dashboard payload.
func (s *StatsService) ForAdministrator() (*dtos.AdminStats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &dtos.AdminStats{}
	apps := func() *gorm.DB { return s.DB.Model(&models.Application{}) }

	if err := apps().Where("status IN ?", pendingStatuses).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}
	if err := apps().Where("reviewed_at >= ?", startOfDay).Count(&stats.ProcessedToday).Error; err != nil {
		return nil, err
	}
	if err := apps().Where("status IN ?", pendingStatuses).
		Where("created_at < ?", now.Add(-overdueAfter)).
		Count(&stats.Overdue).Error; err != nil {
		return nil, err
	}
	if err := apps().Where("created_at >= ?", now.AddDate(0, 0, -7)).Count(&stats.ThisWeek).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
