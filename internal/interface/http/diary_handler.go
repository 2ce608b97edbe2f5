package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mcomanduci/diario-de-gratidao/internal/application"
	"github.com/mcomanduci/diario-de-gratidao/internal/domain/entity"
	"github.com/mcomanduci/diario-de-gratidao/internal/interface/middleware"
	"github.com/mcomanduci/diario-de-gratidao/pkg/response"
	"github.com/mcomanduci/diario-de-gratidao/pkg/validation"
)

type DiaryHandler struct {
	Svc    *application.DiaryService
	Logger *logrus.Logger
}

func NewDiaryHandler(svc *application.DiaryService, logger *logrus.Logger) *DiaryHandler {
	return &DiaryHandler{Svc: svc, Logger: logger}
}

type diaryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	ImageURL    string `json:"image_url" binding:"required,url"`
}

type listDiariosQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     *int   `form:"page"`
	PageSize *int   `form:"page_size"`
}

func diaryJSON(d *entity.Diary) gin.H {
	return gin.H{
		"id":          d.ID,
		"title":       d.Title,
		"description": d.Description,
		"category":    d.Category,
		"image_url":   d.ImageURL,
		"created_at":  d.CreatedAt,
		"updated_at":  d.UpdatedAt,
	}
}

func diariosJSON(entries []*entity.Diary) []gin.H {
	out := make([]gin.H, 0, len(entries))
	for _, d := range entries {
		out = append(out, diaryJSON(d))
	}
	return out
}

// Create POST /api/diarios
func (h *DiaryHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req diaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	d, streak, err := h.Svc.Create(c.Request.Context(), uid, application.EntryInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err, "failed to create entry")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": d.ID, "streak": streak}, "entry created", nil)
}

// List GET /api/diarios?search=&category=&page=&page_size=
func (h *DiaryHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var q listDiariosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}

	entries, total, err := h.Svc.List(c.Request.Context(), uid, application.ListInput{
		Search:   q.Search,
		Category: q.Category,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err, "failed to list entries")
		return
	}
	response.Success(c, http.StatusOK, diariosJSON(entries), "entries", gin.H{"total": total})
}

// Get GET /api/diarios/:id
func (h *DiaryHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	d, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, err, "failed to fetch entry")
		return
	}
	response.Success(c, http.StatusOK, diaryJSON(d), "entry", nil)
}

// Update PUT /api/diarios/:id
func (h *DiaryHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req diaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), application.EntryInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err, "failed to update entry")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"updated": true}, "entry updated", nil)
}

// Delete DELETE /api/diarios/:id
func (h *DiaryHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		writeServiceError(c, h.Logger, err, "failed to delete entry")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "entry deleted", nil)
}

// Export GET /api/diarios/export
func (h *DiaryHandler) Export(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	entries, err := h.Svc.Export(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, h.Logger, err, "failed to export entries")
		return
	}
	response.Success(c, http.StatusOK, diariosJSON(entries), "export", gin.H{"total": len(entries)})
}

// Search GET /api/diarios/search?q=, full-text over the ES index.
func (h *DiaryHandler) Search(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size := 10
	if v, ok := c.GetQuery("size"); ok {
		if n, err := parsePositiveInt(v); err == nil {
			size = n
		}
	}
	hits, err := h.Svc.SearchFullText(c.Request.Context(), uid, q, size)
	if err != nil {
		writeServiceError(c, h.Logger, err, "search failed")
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"total": len(hits)})
}

// MonthlyStats GET /api/stats/monthly
func (h *DiaryHandler) MonthlyStats(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	stats, err := h.Svc.MonthlyStats(c.Request.Context(), uid, time.Now().UTC())
	if err != nil {
		writeServiceError(c, h.Logger, err, "failed to compute stats")
		return
	}
	response.Success(c, http.StatusOK, stats, "monthly stats", nil)
}
