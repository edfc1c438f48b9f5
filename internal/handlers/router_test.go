package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/almhq/license-manager/internal/database"
	"github.com/almhq/license-manager/internal/logger"
	"github.com/almhq/license-manager/internal/models"
	"github.com/almhq/license-manager/internal/services"
	"github.com/almhq/license-manager/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	zlog := logger.NewNop()
	router := NewRouter(RouterDeps{
		DB:  db,
		Log: zlog,
		Applications: NewApplicationHandler(
			services.NewApplicationService(db, zlog),
			services.NewWorkflowService(db, zlog),
		),
		Documents:  NewDocumentHandler(services.NewDocumentService(db, store, 10<<20, zlog)),
		Checklists: NewChecklistHandler(services.NewChecklistService(db, zlog)),
		Stats:      NewStatsHandler(services.NewStatsService(db)),
	})
	return router, db
}

// seedAdmin pre-registers an administrator; the identity middleware will
// find it by subject instead of defaulting the role.
func seedAdmin(t *testing.T, db *gorm.DB, subject string) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		Subject: subject,
		Email:   subject + "@example.com",
		Role:    models.RoleAdministrator,
	}).Error)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, subject string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if subject != "" {
		req.Header.Set("X-Auth-Request-Subject", subject)
		req.Header.Set("X-Auth-Request-Email", subject+"@example.com")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTHENTICATION_REQUIRED")
}

func TestHealthEndpointIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApplicationLifecycleOverHTTP(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db, "admin-1")

	// Employer creates a draft. First sight of this subject registers the
	// user with the employer role.
	createBody := map[string]interface{}{
		"application_type":        models.TypeNewApplication,
		"local_workforce_count":   8,
		"foreign_workforce_count": 2,
		"services_description":    "Unarmed guarding for retail outlets",
		"contact_name":            "Alex Tan",
	}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/applications", "employer-1", createBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Regexp(t, `^ALM-\d{8}-[A-Z0-9]{4}$`, created.ReferenceNumber)
	assert.Equal(t, models.StatusDraft, created.Status)

	appPath := fmt.Sprintf("/api/v1/applications/%d", created.ID)

	// Owner listing contains the new record.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/applications", "employer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	// A status update by the employer is forbidden.
	rec = doJSON(t, router, http.MethodPatch, appPath+"/status", "employer-1",
		map[string]string{"status": models.StatusApproved})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Owner submits, admin approves.
	rec = doJSON(t, router, http.MethodPost, appPath+"/submit", "employer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPatch, appPath+"/status", "admin-1",
		map[string]string{"status": models.StatusApproved, "comments": "looks good"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var approved models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.Equal(t, "looks good", approved.ReviewComments)

	// An approved application is terminal.
	rec = doJSON(t, router, http.MethodPatch, appPath+"/status", "admin-1",
		map[string]string{"status": models.StatusUnderReview})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TRANSITION")
}

func TestStatsPayloadDependsOnRole(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db, "admin-1")

	createBody := map[string]interface{}{
		"application_type":        models.TypeRenewalApplication,
		"local_workforce_count":   5,
		"foreign_workforce_count": 0,
		"services_description":    "Event security",
	}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/applications", "employer-1", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/stats", "employer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"draft":1`)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/stats", "admin-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"processed_today":0`)
	assert.Contains(t, rec.Body.String(), `"pending":0`)
}

func TestChecklistEndpoints(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db, "admin-1")

	createBody := map[string]interface{}{
		"application_type":        models.TypeNewApplication,
		"local_workforce_count":   3,
		"foreign_workforce_count": 1,
		"services_description":    "Patrol services",
	}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/applications", "employer-1", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	checklistPath := fmt.Sprintf("/api/v1/triaging-checklist/%d", created.ID)

	// Employers never see the worksheet.
	rec = doJSON(t, router, http.MethodGet, checklistPath, "employer-1", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Untriaged means empty, not 404.
	rec = doJSON(t, router, http.MethodGet, checklistPath, "admin-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var empty models.TriagingChecklist
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.Zero(t, empty.ID)

	savePath := fmt.Sprintf("/api/v1/applications/%d/triaging-checklist", created.ID)
	rec = doJSON(t, router, http.MethodPost, savePath, "admin-1", map[string]interface{}{
		"recommendation":     "approve",
		"documents_complete": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, checklistPath, "admin-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"recommendation":"approve"`)
}
