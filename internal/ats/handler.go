package ats

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"applywise-backend/internal/resumes"
	"applywise-backend/internal/shared/server/middleware"
	"applywise-backend/internal/shared/server/respond"
)

// Handler exposes ATS analysis routes.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the ATS endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limiter *middleware.RateLimiter) {
	rg.POST("/ats/analyze", middleware.RateLimit("5/minute;20/hour", limiter), h.analyze)
	rg.GET("/ats/history", middleware.RateLimit("10/minute;50/hour", limiter), h.history)
	rg.PUT("/ats/history/:id", middleware.RateLimit("5/minute;20/hour", limiter), h.updateContext)
	rg.DELETE("/ats/history/:id", middleware.RateLimit("5/minute;20/hour", limiter), h.delete)
}

func (h *Handler) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	output, err := h.Svc.Analyze(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, output)
}

type historyQuery struct {
	ResumeID string `form:"resume_id"`
	JobTitle string `form:"job_title"`
	Skip     int    `form:"skip,default=0"`
	Limit    int    `form:"limit,default=10"`
}

func (h *Handler) history(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	analyses, err := h.Svc.History(c.Request.Context(), HistoryOptions{
		ResumeID: q.ResumeID,
		JobTitle: q.JobTitle,
		Skip:     q.Skip,
		Limit:    q.Limit,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, analyses)
}

func (h *Handler) updateContext(c *gin.Context) {
	var u ContextUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	analysis, err := h.Svc.UpdateContext(c.Request.Context(), c.Param("id"), u)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	respond.NoContent(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "Resume not found")
	case errors.Is(err, resumes.ErrInvalidID), errors.Is(err, ErrInvalidID):
		respond.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "ATS Analysis not found")
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusUnprocessableEntity, err.Error())
	default:
		// Provider failures, invalid provider JSON and storage errors all
		// surface as server errors with the message passed through.
		respond.Error(c, http.StatusInternalServerError, err.Error())
	}
}
