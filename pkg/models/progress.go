package models

import "time"

type ProgressEntry struct {
	UserID   string    `json:"user_id"`
	CourseID int64     `json:"course_id"`
	Percent  float64   `json:"percent"`
	At       time.Time `json:"at"`
}
