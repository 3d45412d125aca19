package resumes

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"applywise-backend/internal/shared/server/middleware"
	"applywise-backend/internal/shared/server/respond"
)

// Handler exposes resume routes.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the resume endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limiter *middleware.RateLimiter) {
	rg.GET("/resumes", middleware.RateLimit("10/minute;50/hour", limiter), h.list)
	rg.POST("/resumes", middleware.RateLimit("5/minute;20/hour", limiter), h.create)
	rg.GET("/resumes/:id", middleware.RateLimit("5/minute;20/hour", limiter), h.get)
	rg.PATCH("/resumes/:id", middleware.RateLimit("5/minute;20/hour", limiter), h.update)
	rg.DELETE("/resumes/:id", middleware.RateLimit("5/minute;20/hour", limiter), h.delete)
}

type listQuery struct {
	SearchName   string `form:"search_name"`
	Starred      *bool  `form:"starred"`
	MinCreatedAt string `form:"min_created_at"`
	MaxCreatedAt string `form:"max_created_at"`
	SortBy       string `form:"sort_by"`
	SortOrder    string `form:"sort_order"`
	Page         int    `form:"page,default=1"`
	PageSize     int    `form:"page_size,default=10"`
}

func (h *Handler) list(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	opts := ListOptions{
		SearchName: q.SearchName,
		Starred:    q.Starred,
		SortBy:     q.SortBy,
		SortOrder:  q.SortOrder,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
	var err error
	if opts.MinCreatedAt, err = parseTimeParam(q.MinCreatedAt); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid min_created_at: "+q.MinCreatedAt)
		return
	}
	if opts.MaxCreatedAt, err = parseTimeParam(q.MaxCreatedAt); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid max_created_at: "+q.MaxCreatedAt)
		return
	}

	page, err := h.Svc.List(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, page)
}

func (h *Handler) get(c *gin.Context) {
	resume, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) create(c *gin.Context) {
	var resume Resume
	if err := c.ShouldBindJSON(&resume); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), resume)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.Created(c, created)
}

func (h *Handler) update(c *gin.Context) {
	var u Update
	if err := c.ShouldBindJSON(&u); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), u)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, updated)
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
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "Resume not found")
	case errors.Is(err, ErrInvalidID):
		respond.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAlreadyExists):
		respond.Error(c, http.StatusBadRequest, "Resume for this user already exists.")
	case errors.Is(err, ErrInvalidSort), errors.Is(err, ErrInvalidSortOrder):
		respond.Error(c, http.StatusUnprocessableEntity, err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, err.Error())
	}
}

// parseTimeParam accepts RFC3339 timestamps or bare YYYY-MM-DD dates.
func parseTimeParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q", raw)
	}
	return &t, nil
}
