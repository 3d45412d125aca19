package jobapplications

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"applywise-backend/internal/shared/server/middleware"
	"applywise-backend/internal/shared/server/respond"
)

// Handler exposes job application routes.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the job application endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limiter *middleware.RateLimiter) {
	rg.GET("/job_applications", middleware.RateLimit("10/minute;50/hour", limiter), h.list)
	rg.POST("/job_applications", middleware.RateLimit("5/minute;20/hour", limiter), h.create)
	rg.GET("/job_applications/:id", middleware.RateLimit("5/minute;20/hour", limiter), h.get)
	rg.PATCH("/job_applications/:id", middleware.RateLimit("5/minute;20/hour", limiter), h.update)
	rg.DELETE("/job_applications/:id", middleware.RateLimit("5/minute;20/hour", limiter), h.delete)
}

type listQuery struct {
	UserID             string `form:"user_id"`
	JobTitle           string `form:"job_title"`
	CompanyName        string `form:"company_name"`
	Status             string `form:"status"`
	MinApplicationDate string `form:"min_application_date"`
	MaxApplicationDate string `form:"max_application_date"`
	HasNotes           *bool  `form:"has_notes"`
	HasInterviews      *bool  `form:"has_interviews"`
	SortBy             string `form:"sort_by"`
	SortOrder          string `form:"sort_order"`
	Page               int    `form:"page,default=1"`
	PageSize           int    `form:"page_size,default=10"`
}

func (h *Handler) list(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	opts := ListOptions{
		UserID:        q.UserID,
		JobTitle:      q.JobTitle,
		CompanyName:   q.CompanyName,
		Status:        q.Status,
		HasNotes:      q.HasNotes,
		HasInterviews: q.HasInterviews,
		SortBy:        q.SortBy,
		SortOrder:     q.SortOrder,
		Page:          q.Page,
		PageSize:      q.PageSize,
	}
	var err error
	if opts.MinApplicationDate, err = parseDateParam(q.MinApplicationDate); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid min_application_date: "+q.MinApplicationDate)
		return
	}
	if opts.MaxApplicationDate, err = parseDateParam(q.MaxApplicationDate); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid max_application_date: "+q.MaxApplicationDate)
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
	app, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, app)
}

func (h *Handler) create(c *gin.Context) {
	var app JobApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), app)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.Created(c, created.ListItem())
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
	respond.OK(c, updated.ListItem())
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
		respond.Error(c, http.StatusNotFound, "Job application not found")
	case errors.Is(err, ErrInvalidID):
		respond.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidSort), errors.Is(err, ErrInvalidSortOrder):
		respond.Error(c, http.StatusUnprocessableEntity, err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, err.Error())
	}
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
