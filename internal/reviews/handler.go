package reviews

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub/internal/auth"
)

// Rater applies a recomputed average back to the course record. The catalog
// repo implements it.
type Rater interface {
	SetRating(ctx context.Context, courseID int64, rating float64) error
}

type Handler struct {
	Repo  *Repo
	Rater Rater
}

func NewHandler(repo *Repo, rater Rater) *Handler {
	return &Handler{Repo: repo, Rater: rater}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/courses/:id/reviews", h.listByCourse)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.create)
	rg.DELETE("/reviews/:id", h.delete)
}

type createReq struct {
	CourseID int64  `json:"course_id"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
}

func (h *Handler) create(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if req.CourseID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id required"})
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	review, err := h.Repo.Create(c.Request.Context(), claims.UserID, req.CourseID, req.Rating, strings.TrimSpace(req.Text))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	h.recomputeRating(c.Request.Context(), req.CourseID)

	c.JSON(http.StatusCreated, review)
}

func (h *Handler) listByCourse(c *gin.Context) {
	courseID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || courseID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	reviews, err := h.Repo.ListByCourse(c.Request.Context(), courseID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"limit":  limit,
		"offset": offset,
		"items":  reviews,
	})
}

func (h *Handler) delete(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ok, courseID, err := h.Repo.Delete(c.Request.Context(), id, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	h.recomputeRating(c.Request.Context(), courseID)

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// recomputeRating pushes the fresh average onto the course row. A failure
// here never fails the review write itself.
func (h *Handler) recomputeRating(ctx context.Context, courseID int64) {
	if h.Rater == nil {
		return
	}
	avg, err := h.Repo.AverageForCourse(ctx, courseID)
	if err != nil {
		log.Printf("[reviews] average for course %d: %v", courseID, err)
		return
	}
	if err := h.Rater.SetRating(ctx, courseID, avg); err != nil {
		log.Printf("[reviews] set rating for course %d: %v", courseID, err)
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
