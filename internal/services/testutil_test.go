package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/almhq/license-manager/internal/database"
	"github.com/almhq/license-manager/internal/dtos"
	"github.com/almhq/license-manager/internal/logger"
	"github.com/almhq/license-manager/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	id := uuid.NewString()
	user := &models.User{
		Subject:   id,
		Email:     id + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func validCreateRequest() *dtos.CreateApplicationRequest {
	return &dtos.CreateApplicationRequest{
		ApplicationType:       models.TypeNewApplication,
		LocalWorkforceCount:   intPtr(12),
		ForeignWorkforceCount: intPtr(3),
		ServicesDescription:   "Security guarding services for commercial premises",
		ContactName:           "Jordan Lim",
		ContactEmail:          "jordan@acme.example",
		ContactPhone:          "+65 8123 4567",
	}
}

// seedApplication creates a draft application through the service so the
// reference number and defaults come from production code.
func seedApplication(t *testing.T, db *gorm.DB, owner *models.User) *models.Application {
	t.Helper()
	svc := NewApplicationService(db, logger.NewNop())
	app, err := svc.Create(owner.ID, validCreateRequest())
	require.NoError(t, err)
	return app
}

// setStatus drives a record into an arbitrary status for test setup,
// bypassing the workflow rules under test.
func setStatus(t *testing.T, db *gorm.DB, id uint, status string) {
	t.Helper()
	require.NoError(t, db.Model(&models.Application{}).Where("id = ?", id).Update("status", status).Error)
}
