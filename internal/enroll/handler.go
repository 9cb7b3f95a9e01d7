package enroll

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"learnhub/internal/auth"
	"learnhub/internal/events"
	"learnhub/pkg/models"
)

type Handler struct {
	Repo *Repo
	Hub  *events.Hub
}

func NewHandler(repo *Repo, hub *events.Hub) *Handler {
	return &Handler{Repo: repo, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/enrollments", h.list)
	rg.POST("/enrollments", h.addOrUpdate)
	rg.PUT("/enrollments/:course_id", h.addOrUpdate)
	rg.DELETE("/enrollments/:course_id", h.remove)
	rg.GET("/enrollments/:course_id", h.getOne)
}

type upsertReq struct {
	CourseID int64   `json:"course_id"` // required for POST
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
}

func (h *Handler) addOrUpdate(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	courseID := req.CourseID
	if courseID == 0 {
		courseID, _ = strconv.ParseInt(c.Param("course_id"), 10, 64)
	}
	if courseID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id required"})
		return
	}

	status := normalizeStatus(req.Status)
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "status must be one of: enrolled, in_progress, completed, dropped",
		})
		return
	}

	if req.Progress < 0 || req.Progress > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "progress must be 0-100"})
		return
	}

	// completed pins progress to 100
	if status == "completed" {
		req.Progress = 100
	}

	e := models.Enrollment{
		UserID:   claims.UserID,
		CourseID: courseID,
		Status:   status,
		Progress: req.Progress,
	}
	if err := h.Repo.Upsert(c.Request.Context(), e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	// Return canonical stored row including updated_at
	saved, err := h.Repo.Get(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch saved failed"})
		return
	}
	if saved == nil {
		saved = &e
		saved.UpdatedAt = time.Now().UTC()
	}

	if h.Hub != nil {
		ev := events.EnrollmentEvent{
			Type:     "enrollment.update",
			UserID:   claims.UserID,
			CourseID: courseID,
			Status:   saved.Status,
			Progress: saved.Progress,
			At:       time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, saved)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		status = normalizeStatus(status)
		if status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.List(c.Request.Context(), claims.UserID, status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	courseID, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil || courseID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id required"})
		return
	}

	ok, err := h.Repo.Delete(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if h.Hub != nil {
		ev := events.EnrollmentEvent{
			Type:     "enrollment.delete",
			UserID:   claims.UserID,
			CourseID: courseID,
			At:       time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) getOne(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	courseID, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil || courseID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id required"})
		return
	}

	e, err := h.Repo.Get(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func normalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enrolled":
		return "enrolled"
	case "in progress", "in_progress", "inprogress":
		return "in_progress"
	case "completed":
		return "completed"
	case "dropped":
		return "dropped"
	default:
		return ""
	}
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
