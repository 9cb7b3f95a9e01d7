package events

import "time"

// EnrollmentEvent types: "enrollment.update", "enrollment.delete",
// "progress.update".
type EnrollmentEvent struct {
	Type     string    `json:"type"`
	UserID   string    `json:"user_id"`
	CourseID int64     `json:"course_id"`
	Status   string    `json:"status,omitempty"`
	Progress float64   `json:"progress,omitempty"`
	At       time.Time `json:"at"`
}
