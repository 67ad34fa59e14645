package dto

import "github.com/ecolearners/platform-api/internal/models"

// LessonCreateRequest carries the fields for a new lesson.
type LessonCreateRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"required"`
	VideoURL    string `json:"video_url" validate:"required,url"`
}

// LessonResponse is the public lesson view.
type LessonResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
}

// LessonQuizResponse bundles a lesson with its quiz and the caller's
// submission status, mirroring what the lesson page needs in one call.
type LessonQuizResponse struct {
	Lesson     LessonResponse        `json:"lesson"`
	Quiz       *QuizResponse         `json:"quiz,omitempty"`
	Submission *QuizSubmissionStatus `json:"submission,omitempty"`
}

// NewLessonResponse converts a Lesson model.
func NewLessonResponse(model models.Lesson) LessonResponse {
	return LessonResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		VideoURL:    model.VideoURL,
	}
}

// NewLessonResponseSlice converts a slice of lessons.
func NewLessonResponseSlice(lessons []models.Lesson) []LessonResponse {
	responses := make([]LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		responses = append(responses, NewLessonResponse(lesson))
	}
	return responses
}
