package dto

import (
	"time"

	"github.com/ecolearners/platform-api/internal/models"
)

// TaskCreateRequest carries the fields for a new assigned task.
type TaskCreateRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"required"`
	Points      int    `json:"points" validate:"required,gt=0"`
	Deadline    string `json:"deadline" validate:"required,datetime=2006-01-02"`
}

// TaskSubmissionStatus summarizes the caller's submission state on a task.
type TaskSubmissionStatus struct {
	Approved      bool `json:"approved"`
	PointsAwarded int  `json:"points_awarded"`
}

// TaskResponse is the task view, optionally annotated with the caller's
// submission status.
type TaskResponse struct {
	ID               uint                  `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Points           int                   `json:"points"`
	Deadline         time.Time             `json:"deadline"`
	SubmissionStatus *TaskSubmissionStatus `json:"submission_status,omitempty"`
}

// TaskSubmissionSummary lists a pending submission for the grading queue.
type TaskSubmissionSummary struct {
	ID          uint      `json:"id"`
	StudentName string    `json:"student_name"`
	TaskTitle   string    `json:"task_title"`
	FileURL     string    `json:"file_url"`
	MaxPoints   int       `json:"max_points"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewTaskResponse converts an AssignedTask model.
func NewTaskResponse(model models.AssignedTask) TaskResponse {
	return TaskResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Points:      model.Points,
		Deadline:    model.Deadline,
	}
}

// NewTaskSubmissionStatus converts a submission into its status view.
func NewTaskSubmissionStatus(model models.TaskSubmission) TaskSubmissionStatus {
	return TaskSubmissionStatus{
		Approved:      model.Approved,
		PointsAwarded: model.PointsAwarded,
	}
}
