package handlers

import (
	"net/http"

	"github.com/almhq/license-manager/internal/auth"
	"github.com/almhq/license-manager/internal/dtos"
	"github.com/almhq/license-manager/internal/services"
	"github.com/gin-gonic/gin"
)

type ChecklistHandler struct {
	Checklists *services.ChecklistService
}

func NewChecklistHandler(cls *services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{Checklists: cls}
}

// Save is POST /applications/:id/triaging-checklist (upsert).
func (h *ChecklistHandler) Save(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dtos.SaveChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	checklist, err := h.Checklists.Save(id, auth.CurrentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checklist)
}

// Get is GET /triaging-checklist/:applicationId. A yet-untriaged
// application yields an empty checklist, not a 404.
func (h *ChecklistHandler) Get(c *gin.Context) {
	id, err := pathID(c, "applicationId")
	if err != nil {
		respondError(c, err)
		return
	}
	checklist, err := h.Checklists.Get(id, auth.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checklist)
}
