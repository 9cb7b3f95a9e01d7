package models

import "time"

type Enrollment struct {
	UserID    string    `json:"user_id"`
	CourseID  int64     `json:"course_id"`
	Status    string    `json:"status"`
	Progress  float64   `json:"progress"`
	UpdatedAt time.Time `json:"updated_at"`
}
