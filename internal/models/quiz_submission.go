package models

import "time"

// QuizSubmission records a student's single attempt at a quiz. The composite
// unique index on (quiz_id, user_id) is what enforces the one-submission rule,
// including under concurrent submits.
type QuizSubmission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	QuizID      uint      `gorm:"not null;uniqueIndex:idx_quiz_submission_once" json:"quiz_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_quiz_submission_once" json:"user_id"`
	Score       *int      `json:"score"`
	IsGraded    bool      `gorm:"not null;default:false" json:"is_graded"`
	Answers     []Answer  `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"answers"`
	Quiz        Quiz      `json:"-"`
	Student     User      `gorm:"foreignKey:UserID" json:"-"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}

// Answer is one (question, answer text) pair inside a quiz submission.
type Answer struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	SubmissionID uint     `gorm:"index;not null" json:"submission_id"`
	QuestionID   uint     `gorm:"not null" json:"question_id"`
	AnswerText   string   `gorm:"type:text" json:"answer_text"`
	Question     Question `json:"-"`
}
