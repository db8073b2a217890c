// Package httpapi exposes a case session over HTTP.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/casedesk/internal/app"
	"github.com/example/casedesk/internal/ctxutil"
	"github.com/example/casedesk/internal/ports/primary"
)

// ActorHeader names the request header that identifies the caller in logs.
const ActorHeader = "X-Actor"

// Handler serves the case dashboard API for one session.
type Handler struct {
	session        *app.Session
	logger         *slog.Logger
	exportPath     string
	defaultMinRisk int
}

// NewHandler creates a handler bound to session. Reports are written to
// exportPath; requests without min_risk use defaultMinRisk.
func NewHandler(session *app.Session, logger *slog.Logger, exportPath string, defaultMinRisk int) *Handler {
	return &Handler{
		session:        session,
		logger:         logger.With("component", "httpapi"),
		exportPath:     exportPath,
		defaultMinRisk: defaultMinRisk,
	}
}

// NewRouter returns a gin engine with the handler's routes and middleware.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.actorMiddleware(), h.logMiddleware())
	h.RegisterRoutes(router)
	return router
}

// RegisterRoutes binds the handler to router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", h.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/cases", h.ListCases)
		api.GET("/cases/:id", h.GetCase)
		api.PATCH("/cases/:id", h.UpdateCase)
		api.GET("/charts", h.Charts)
		api.GET("/options", h.Options)
		api.POST("/reports", h.ExportReport)
	}
}

// Health reports liveness and how the session was loaded.
func (h *Handler) Health(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if last := h.session.LastLoad(); last != nil {
		body["source"] = last.Source
	}
	c.JSON(http.StatusOK, body)
}

// ListCases returns the cases matching the query selectors.
func (h *Handler) ListCases(c *gin.Context) {
	req, err := h.filterFromQuery(c)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	matched, err := h.session.Filter(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": matched, "count": len(matched)})
}

// GetCase returns one case.
func (h *Handler) GetCase(c *gin.Context) {
	found, err := h.session.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": found})
}

type updateCaseBody struct {
	Status   string `json:"status" binding:"required"`
	Comments string `json:"comments"`
}

// UpdateCase commits a status/comments change for one case.
func (h *Handler) UpdateCase(c *gin.Context) {
	var body updateCaseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	updated, err := h.session.Update(c.Request.Context(), primary.UpdateCaseRequest{
		CaseID:   c.Param("id"),
		Status:   body.Status,
		Comments: body.Comments,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// Charts returns the risk histogram and status breakdown of the filtered view.
func (h *Handler) Charts(c *gin.Context) {
	req, err := h.filterFromQuery(c)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.session.Summary(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// Options returns the selector values present in the session.
func (h *Handler) Options(c *gin.Context) {
	opts := h.session.Options()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"statuses":         opts.Statuses,
		"case_types":       opts.CaseTypes,
		"default_min_risk": h.defaultMinRisk,
	}})
}

// ExportReport writes the filtered view to the configured report path.
func (h *Handler) ExportReport(c *gin.Context) {
	req, err := h.filterFromQuery(c)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.session.Export(c.Request.Context(), req, h.exportPath)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"path": h.exportPath, "rows": n}})
}

// filterFromQuery builds selectors from repeated status / case_type params
// and min_risk. An absent param takes the session default; a present but
// empty one yields the empty set.
func (h *Handler) filterFromQuery(c *gin.Context) (primary.FilterRequest, error) {
	req := h.session.DefaultFilter(h.defaultMinRisk)

	if values, ok := c.GetQueryArray("status"); ok {
		req.Statuses = nonEmpty(values)
	}
	if values, ok := c.GetQueryArray("case_type"); ok {
		req.CaseTypes = nonEmpty(values)
	}
	if raw, ok := c.GetQuery("min_risk"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.New("invalid min_risk")
		}
		req.MinRisk = n
	}
	return req, nil
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrCaseNotFound):
		errorJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrInvalidUpdate), errors.Is(err, app.ErrInvalidFilter):
		errorJSON(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(), "error", err)
		errorJSON(c, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) actorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader(ActorHeader); actor != "" {
			c.Request = c.Request.WithContext(ctxutil.WithActorID(c.Request.Context(), actor))
		}
		c.Next()
	}
}

func (h *Handler) logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
