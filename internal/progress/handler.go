package progress

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
	rg.GET("/progress", h.list)
	rg.POST("/progress", h.add)
}

type addReq struct {
	CourseID int64   `json:"course_id"`
	Percent  float64 `json:"percent"`
}

func (h *Handler) add(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if req.CourseID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id required"})
		return
	}
	if req.Percent < 0 || req.Percent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "percent must be 0-100"})
		return
	}

	entry := models.ProgressEntry{
		UserID:   claims.UserID,
		CourseID: req.CourseID,
		Percent:  req.Percent,
		At:       time.Now().UTC(),
	}

	if err := h.Repo.Add(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Hub != nil {
		ev := events.EnrollmentEvent{
			Type:     "progress.update",
			UserID:   claims.UserID,
			CourseID: req.CourseID,
			Progress: req.Percent,
			At:       entry.At,
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	courseID, err := strconv.ParseInt(strings.TrimSpace(c.Query("course_id")), 10, 64)
	if err != nil || courseID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id required"})
		return
	}

	limit := parseInt(c.Query("limit"), 50)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.List(c.Request.Context(), claims.UserID, courseID, limit, offset)
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
