package models

import "time"

// AssignedTask is a file-based assignment with a point budget and a deadline.
type AssignedTask struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Points      int              `gorm:"not null" json:"points"`
	Deadline    time.Time        `gorm:"not null" json:"deadline"`
	Submissions []TaskSubmission `gorm:"foreignKey:TaskID" json:"-"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// IsPastDue returns true when the task deadline has already passed.
func (t AssignedTask) IsPastDue(reference time.Time) bool {
	return reference.After(t.Deadline)
}

// TaskSubmission records a student's single file upload against a task.
// Approved flips to true exactly once, inside the grading transaction that
// also credits the student's points.
type TaskSubmission struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	TaskID        uint         `gorm:"not null;uniqueIndex:idx_task_submission_once" json:"task_id"`
	UserID        uint         `gorm:"not null;uniqueIndex:idx_task_submission_once" json:"user_id"`
	FileURL       string       `gorm:"size:512" json:"file_url"`
	Approved      bool         `gorm:"not null;default:false" json:"approved"`
	PointsAwarded int          `gorm:"not null;default:0" json:"points_awarded"`
	Task          AssignedTask `gorm:"foreignKey:TaskID" json:"-"`
	Student       User         `gorm:"foreignKey:UserID" json:"-"`
	SubmittedAt   time.Time    `gorm:"autoCreateTime" json:"submitted_at"`
}
