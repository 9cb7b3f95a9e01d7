package recommend

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub/pkg/models"
)

var searchedFields = []string{"title", "description", "tags"}

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommend-all", h.recommendAll)
	rg.POST("/recommend", h.recommend)
	rg.POST("/search", h.search)
}

type recommendAllReq struct {
	Interest   []string `json:"interest"`
	SkillLevel string   `json:"skill_level"`
}

func (h *Handler) recommendAll(c *gin.Context) {
	var req recommendAllReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid input data",
			"details": gin.H{"body": "request body must be valid JSON"},
		})
		return
	}

	interests := cleanTerms(req.Interest)
	if len(interests) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid input data",
			"details": gin.H{"interest": "at least one interest is required"},
		})
		return
	}

	difficulty, ok := optionalLevel(req.SkillLevel)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid input data",
			"details": gin.H{"skill_level": "must be one of: beginner, intermediate, advanced"},
		})
		return
	}

	courses, err := h.Service.RecommendAll(c.Request.Context(), interests, difficulty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed"})
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}

	c.JSON(http.StatusOK, gin.H{
		"courses":        courses,
		"total_returned": len(courses),
		"search_info": gin.H{
			"interest":        interests,
			"skill_level":     difficulty,
			"searched_fields": searchedFields,
		},
	})
}

type recommendReq struct {
	Interests  []string `json:"interests"`
	SkillLevel string   `json:"skill_level"`
}

func (h *Handler) recommend(c *gin.Context) {
	var req recommendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid input data",
			"details": gin.H{"body": "request body must be valid JSON"},
		})
		return
	}

	details := gin.H{}
	interests := cleanTerms(req.Interests)
	if len(interests) == 0 {
		details["interests"] = "at least one interest is required"
	}
	difficulty := models.NormalizeDifficulty(req.SkillLevel)
	if strings.TrimSpace(req.SkillLevel) == "" {
		details["skill_level"] = "skill_level is required"
	} else if difficulty == "" {
		details["skill_level"] = "must be one of: beginner, intermediate, advanced"
	}
	if len(details) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data", "details": details})
		return
	}

	courses, err := h.Service.Recommend(c.Request.Context(), interests, difficulty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed"})
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": courses,
		"total_found":     len(courses),
		"filters_applied": gin.H{
			"interests":   interests,
			"skill_level": difficulty,
		},
	})
}

type searchReq struct {
	Query      string `json:"query"`
	SkillLevel string `json:"skill_level"`
}

func (h *Handler) search(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid input data",
			"details": gin.H{"body": "request body must be valid JSON"},
		})
		return
	}

	terms := cleanTerms(strings.Fields(req.Query))
	if len(terms) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid input data",
			"details": gin.H{"query": "query is required"},
		})
		return
	}

	difficulty, ok := optionalLevel(req.SkillLevel)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid input data",
			"details": gin.H{"skill_level": "must be one of: beginner, intermediate, advanced"},
		})
		return
	}

	courses, err := h.Service.Search(c.Request.Context(), terms, difficulty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}

	c.JSON(http.StatusOK, gin.H{
		"courses":     courses,
		"total_found": len(courses),
		"search_info": gin.H{
			"query":           req.Query,
			"skill_level":     difficulty,
			"searched_fields": searchedFields,
		},
	})
}

// cleanTerms trims each term and drops empties.
func cleanTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// optionalLevel normalizes an optional skill level; empty input is valid and
// means no difficulty filter.
func optionalLevel(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", true
	}
	d := models.NormalizeDifficulty(s)
	return d, d != ""
}
