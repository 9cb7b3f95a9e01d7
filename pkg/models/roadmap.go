package models

// Roadmap is the ordered learning path attached to a catalog course.
type Roadmap struct {
	CourseID    int64         `json:"course_id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Items       []RoadmapItem `json:"items"`
}

type RoadmapItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"` // "video", "article", "quiz"
	ContentURL  string `json:"content_url,omitempty"`
	Position    int    `json:"position"`
}
