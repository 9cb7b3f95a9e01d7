package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub/pkg/models"
)

// Announcer receives newly published courses. The UDP notify server
// implements it; nil disables announcements.
type Announcer interface {
	AnnounceCourse(course models.Course)
}

type Handler struct {
	Repo      *Repo
	Announcer Announcer
}

func NewHandler(repo *Repo, announcer Announcer) *Handler {
	return &Handler{Repo: repo, Announcer: announcer}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)                       // GET /courses
	rg.GET("/:id", h.getByID)                // GET /courses/:id
	rg.GET("/:id/roadmap", h.roadmap)        // GET /courses/:id/roadmap
}

// RegisterAdminRoutes attaches write endpoints; the caller decides which
// middleware guards them.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.create) // POST /courses
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Q:          c.Query("q"),
		Difficulty: c.Query("difficulty"),
		Limit:      parseInt(c.Query("limit"), 20),
		Offset:     parseInt(c.Query("offset"), 0),
	}

	// tags=AI,Web Development OR tags=AI&tags=Web Development
	tags := c.QueryArray("tags")
	if len(tags) == 0 {
		if s := c.Query("tags"); s != "" {
			tags = strings.Split(s, ",")
		}
	}
	q.Tags = tags

	total, err := h.Repo.Count(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}

	items, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  items,
	})
}

func (h *Handler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	course, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) roadmap(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	rm, err := h.Repo.Roadmap(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if rm == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no roadmap for this course"})
		return
	}
	c.JSON(http.StatusOK, rm)
}

type createReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Overview    string   `json:"overview"`
	URL         string   `json:"url"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
	Duration    string   `json:"duration"`
	Provider    string   `json:"provider"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	difficulty := models.NormalizeDifficulty(req.Difficulty)
	if difficulty == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "difficulty must be one of: beginner, intermediate, advanced",
		})
		return
	}

	provider := strings.TrimSpace(req.Provider)
	if provider == "" {
		provider = "LearnHub"
	}

	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		Overview:    req.Overview,
		URL:         req.URL,
		Difficulty:  difficulty,
		Tags:        req.Tags,
		Duration:    req.Duration,
		Provider:    provider,
	}

	saved, err := h.Repo.Create(c.Request.Context(), course)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	if h.Announcer != nil {
		go h.Announcer.AnnounceCourse(*saved)
	}

	c.JSON(http.StatusCreated, saved)
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
