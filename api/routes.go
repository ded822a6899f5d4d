package api

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "backend_architect/internal/api"
)

// RegisterRoutes sets up the page and API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, tmpl *template.Template, h *handlers.APIHandler) {
	router.SetHTMLTemplate(tmpl)

	// --- Browser Pages ---
	// Form posts redirect back to / so a reload never resubmits.
	pages := router.Group("/", h.SessionMiddleware())
	{
		pages.GET("", h.Index)
		pages.POST("generate", h.Generate)
		pages.POST("framework", h.SelectFramework)
	}

	// --- JSON API ---
	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/state", h.SessionMiddleware(), h.State)
		apiGroup.GET("/frameworks", h.Frameworks)
		apiGroup.POST("/generate", h.GenerateJSON)
	}

	// --- Simple Health Check ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
