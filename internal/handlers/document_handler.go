package handlers

import (
	"fmt"
	"net/http"

	"github.com/almhq/license-manager/internal/auth"
	"github.com/almhq/license-manager/internal/services"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	Documents *services.DocumentService
}

func NewDocumentHandler(docs *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{Documents: docs}
}

// Upload is POST /applications/:id/documents (multipart, field "files").
func (h *DocumentHandler) Upload(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form: " + err.Error()})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files in upload"})
		return
	}

	result, err := h.Documents.Upload(id, auth.CurrentUser(c), files, c.PostForm("document_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Download is GET /documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	doc, rc, err := h.Documents.Download(id, auth.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.OriginalFilename),
	}
	c.DataFromReader(http.StatusOK, doc.SizeBytes, doc.MimeType, rc, extraHeaders)
}

// Delete is DELETE /documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Documents.Delete(id, auth.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
