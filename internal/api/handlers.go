package api

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"backend_architect/internal/ai"
	"backend_architect/internal/render"
	"backend_architect/internal/session"
	"backend_architect/internal/types"
)

const (
	// SessionCookie carries the session id between page loads.
	SessionCookie = "architect_session"

	sessionKey = "session"
)


// APIHandler holds dependencies for the page and JSON endpoints.
type APIHandler struct {
	sessions  *session.Manager
	generator session.Generator
	opts      render.Options

	// baseCtx outlives single requests; background generations are bound to it so a
	// redirect does not cancel them. It is cancelled on shutdown.
	baseCtx context.Context
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(baseCtx context.Context, sessions *session.Manager, generator session.Generator, opts render.Options) *APIHandler {
	return &APIHandler{
		sessions:  sessions,
		generator: generator,
		opts:      opts,
		baseCtx:   baseCtx,
	}
}

// --- Structs for API Requests/Responses ---

type GenerateRequest struct {
	Prompt    string `json:"prompt"`
	Framework string `json:"framework"`
}

type FrameworksResponse struct {
	Frameworks []types.Framework `json:"frameworks"`
	Default    types.Framework   `json:"default"`
}

// --- Middleware ---

// SessionMiddleware attaches the browser's session, issuing a new cookie when the
// browser has none or its session was evicted.
func (h *APIHandler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)
		sess, created := h.sessions.Acquire(id)
		if created {
			log.Printf("Info: started session %s", sess.ID)
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sess.ID, 0, "/", "", false, true)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// --- Page Handlers ---

// GET /
func (h *APIHandler) Index(c *gin.Context) {
	sess := currentSession(c)
	c.HTML(http.StatusOK, render.IndexTemplate, render.NewPage(sess.Snapshot(), h.opts))
}

// POST /generate
func (h *APIHandler) Generate(c *gin.Context) {
	sess := currentSession(c)
	sess.SetPrompt(c.PostForm("prompt"))

	if sess.SubmitAsync(h.baseCtx) {
		log.Printf("Info: session %s submitted a generation", sess.ID)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// POST /framework
func (h *APIHandler) SelectFramework(c *gin.Context) {
	framework, err := types.ParseFramework(c.PostForm("framework"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	sess := currentSession(c)
	// The framework buttons share the prompt form, so an unsaved edit travels with them.
	if prompt, ok := c.GetPostForm("prompt"); ok {
		sess.SetPrompt(prompt)
	}
	if sess.SelectFrameworkAsync(h.baseCtx, framework) {
		log.Printf("Info: session %s switched to %s and regenerated", sess.ID, framework)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// --- JSON Handlers ---

// GET /api/state
func (h *APIHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Snapshot())
}

// GET /api/frameworks
func (h *APIHandler) Frameworks(c *gin.Context) {
	c.JSON(http.StatusOK, FrameworksResponse{Frameworks: types.Frameworks(), Default: types.DefaultFramework})
}

// POST /api/generate runs one generation outside any session and returns the result.
func (h *APIHandler) GenerateJSON(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	framework := types.DefaultFramework
	if req.Framework != "" {
		f, err := types.ParseFramework(req.Framework)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		framework = f
	}

	result, err := h.generator.GenerateBackendCode(c.Request.Context(), req.Prompt, framework)
	if err == nil && result == nil {
		err = ai.ErrNoResult
	}
	if err != nil {
		log.Printf("WARN: stateless generation failed (%s): %v", framework, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": session.FailureMessage})
		return
	}
	c.JSON(http.StatusOK, result)
}
