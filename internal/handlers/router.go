package handlers

import (
	"github.com/almhq/license-manager/internal/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RouterDeps carries everything the route table needs.
type RouterDeps struct {
	DB           *gorm.DB
	Log          *zap.Logger
	Applications *ApplicationHandler
	Documents    *DocumentHandler
	Checklists   *ChecklistHandler
	Stats        *StatsHandler
}

// NewRouter assembles the gin engine with CORS, identity middleware and the
// full route table.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	api.GET("/health", HealthCheck)

	authed := api.Group("")
	authed.Use(auth.Middleware(deps.DB, deps.Log))
	{
		authed.POST("/applications", deps.Applications.Create)
		authed.GET("/applications", deps.Applications.List)
		authed.GET("/applications/:id", deps.Applications.Get)
		authed.PATCH("/applications/:id", deps.Applications.Update)
		authed.POST("/applications/:id/submit", deps.Applications.Submit)
		authed.PATCH("/applications/:id/status", deps.Applications.UpdateStatus)

		authed.POST("/applications/:id/documents", deps.Documents.Upload)
		authed.GET("/documents/:id/download", deps.Documents.Download)
		authed.DELETE("/documents/:id", deps.Documents.Delete)

		authed.POST("/applications/:id/triaging-checklist", deps.Checklists.Save)
		authed.GET("/triaging-checklist/:applicationId", deps.Checklists.Get)

		authed.GET("/stats", deps.Stats.Get)
	}

	return r
}
