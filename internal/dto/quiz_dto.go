package dto

import (
	"time"

	"github.com/ecolearners/platform-api/internal/models"
)

// QuizCreateRequest replaces a lesson's question set.
type QuizCreateRequest struct {
	Questions []QuestionCreateRequest `json:"questions" validate:"required,min=1,dive"`
}

// QuestionCreateRequest is a single new question.
type QuestionCreateRequest struct {
	QuestionText string `json:"question_text" validate:"required,min=1"`
}

// QuizResponse is the quiz view with its total point value.
type QuizResponse struct {
	ID          uint               `json:"id"`
	LessonID    uint               `json:"lesson_id"`
	Questions   []QuestionResponse `json:"questions"`
	TotalPoints int                `json:"total_points"`
}

// QuestionResponse is one question in a quiz view.
type QuestionResponse struct {
	ID           uint   `json:"id"`
	QuestionText string `json:"question_text"`
}

// QuizSubmitRequest carries a student's ordered answers.
type QuizSubmitRequest struct {
	Answers []AnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

// AnswerRequest is one (question, answer text) pair.
type AnswerRequest struct {
	QuestionID uint   `json:"question_id" validate:"required,gt=0"`
	AnswerText string `json:"answer_text" validate:"required"`
}

// QuizSubmissionStatus summarizes the caller's submission state on a quiz.
type QuizSubmissionStatus struct {
	IsGraded bool `json:"is_graded"`
	Score    *int `json:"score"`
}

// QuizSubmissionSummary lists a pending submission for the grading queue.
type QuizSubmissionSummary struct {
	ID          uint      `json:"id"`
	StudentName string    `json:"student_name"`
	QuizTitle   string    `json:"quiz_title"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// QuizSubmissionDetail is the full view a teacher grades from.
type QuizSubmissionDetail struct {
	ID          uint             `json:"id"`
	StudentName string           `json:"student_name"`
	QuizTitle   string           `json:"quiz_title"`
	Answers     []AnswerResponse `json:"answers"`
	TotalPoints int              `json:"total_points"`
}

// AnswerResponse pairs the question text with the student's answer.
type AnswerResponse struct {
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text"`
}

// GradeRequest carries the points a teacher awards to a submission.
type GradeRequest struct {
	Points int `json:"points" validate:"gte=0"`
}

// NewQuizResponse converts a Quiz model.
func NewQuizResponse(model models.Quiz) QuizResponse {
	questions := make([]QuestionResponse, 0, len(model.Questions))
	for _, question := range model.Questions {
		questions = append(questions, QuestionResponse{
			ID:           question.ID,
			QuestionText: question.QuestionText,
		})
	}

	return QuizResponse{
		ID:          model.ID,
		LessonID:    model.LessonID,
		Questions:   questions,
		TotalPoints: model.MaxScore(),
	}
}

// NewQuizSubmissionStatus converts a submission into its status view.
func NewQuizSubmissionStatus(model models.QuizSubmission) QuizSubmissionStatus {
	return QuizSubmissionStatus{
		IsGraded: model.IsGraded,
		Score:    model.Score,
	}
}
