package journal

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub/internal/auth"
	"learnhub/pkg/models"
)

type Handler struct {
	Repo   *Repo
	Scorer Scorer
}

func NewHandler(repo *Repo, scorer Scorer) *Handler {
	return &Handler{Repo: repo, Scorer: scorer}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/journal", h.list)
	rg.POST("/journal", h.create)
	rg.GET("/journal/:id", h.getOne)
	rg.PUT("/journal/:id", h.update)
	rg.DELETE("/journal/:id", h.delete)
}

type entryReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Mood    string `json:"mood"`
}

func (h *Handler) create(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	e, ok := h.buildEntry(c, claims.UserID, req)
	if !ok {
		return
	}

	saved, err := h.Repo.Create(c.Request.Context(), e)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) update(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	e, ok := h.buildEntry(c, claims.UserID, req)
	if !ok {
		return
	}
	e.ID = id

	saved, err := h.Repo.Update(c.Request.Context(), e)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if saved == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// buildEntry validates the request and runs sentiment scoring. A scorer
// failure leaves the sentiment fields empty rather than failing the write.
func (h *Handler) buildEntry(c *gin.Context, userID string, req entryReq) (models.JournalEntry, bool) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return models.JournalEntry{}, false
	}

	mood := strings.ToLower(strings.TrimSpace(req.Mood))
	if mood != "" && !models.ValidMood(mood) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "mood must be one of: " + strings.Join(models.Moods, ", "),
		})
		return models.JournalEntry{}, false
	}

	e := models.JournalEntry{
		UserID:  userID,
		Title:   title,
		Content: strings.TrimSpace(req.Content),
		Mood:    mood,
	}

	if h.Scorer != nil && e.Content != "" {
		score, label, err := h.Scorer.Score(e.Content)
		if err != nil {
			log.Printf("[journal] sentiment scoring: %v", err)
		} else {
			e.SentimentScore = &score
			e.SentimentLabel = label
		}
	}
	return e, true
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.List(c.Request.Context(), claims.UserID, limit, offset)
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

func (h *Handler) getOne(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	e, err := h.Repo.GetByID(c.Request.Context(), id, claims.UserID)
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

func (h *Handler) delete(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ok, err := h.Repo.Delete(c.Request.Context(), id, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
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
