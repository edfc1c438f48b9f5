package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/almhq/license-manager/internal/models"
	"github.com/almhq/license-manager/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentUploadAndDownloadOverHTTP(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db, "admin-1")

	createBody := map[string]interface{}{
		"application_type":        models.TypeNewApplication,
		"local_workforce_count":   4,
		"foreign_workforce_count": 0,
		"services_description":    "Crowd control",
	}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/applications", "employer-1", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var app models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))

	// Multipart batch: one good pdf, one disallowed extension.
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("files", "policy.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("pdf content"))
	require.NoError(t, err)
	fw, err = w.CreateFormFile("files", "photo.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png content"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("document_type", "insurance"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/applications/%d/documents", app.ID), body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Auth-Request-Subject", "employer-1")
	req.Header.Set("X-Auth-Request-Email", "employer-1@example.com")
	uploadRec := httptest.NewRecorder()
	router.ServeHTTP(uploadRec, req)
	require.Equal(t, http.StatusCreated, uploadRec.Code, uploadRec.Body.String())

	var result services.UploadResult
	require.NoError(t, json.Unmarshal(uploadRec.Body.Bytes(), &result))
	require.Len(t, result.Created, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "photo.png", result.Failures[0].Filename)

	downloadPath := fmt.Sprintf("/api/v1/documents/%d/download", result.Created[0].ID)

	// Admin may download someone else's document.
	rec = doJSON(t, router, http.MethodGet, downloadPath, "admin-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pdf content", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "policy.pdf")

	// An unrelated employer may not.
	rec = doJSON(t, router, http.MethodGet, downloadPath, "employer-2", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Owner housekeeping.
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/documents/%d", result.Created[0].ID), "employer-1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
