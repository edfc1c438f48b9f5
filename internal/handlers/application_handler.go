package handlers

import (
	"net/http"

	"github.com/almhq/license-manager/internal/auth"
	"github.com/almhq/license-manager/internal/dtos"
	"github.com/almhq/license-manager/internal/services"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
	Workflow     *services.WorkflowService
}

func NewApplicationHandler(apps *services.ApplicationService, wf *services.WorkflowService) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps, Workflow: wf}
}

// Create is POST /applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dtos.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	caller := auth.CurrentUser(c)
	app, err := h.Applications.Create(caller.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// List is GET /applications: administrators get the filtered full listing,
// employers their own records.
func (h *ApplicationHandler) List(c *gin.Context) {
	caller := auth.CurrentUser(c)
	if caller.IsAdministrator() {
		var filters dtos.ApplicationFilters
		if err := c.ShouldBindQuery(&filters); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters: " + err.Error()})
			return
		}
		apps, err := h.Applications.ListAll(caller, filters)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, apps)
		return
	}

	apps, err := h.Applications.ListForUser(caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Get is GET /applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	app, err := h.Applications.Get(id, auth.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Update is PATCH /applications/:id
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dtos.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	app, err := h.Applications.Update(id, auth.CurrentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Submit is POST /applications/:id/submit
func (h *ApplicationHandler) Submit(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	app, err := h.Workflow.Submit(id, auth.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// UpdateStatus is PATCH /applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	app, err := h.Workflow.UpdateStatus(id, req.Status, req.Comments, auth.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
