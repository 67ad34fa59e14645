package models

import "time"

// Lesson is a unit of learning content. Each lesson owns at most one quiz.
type Lesson struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoURL    string    `gorm:"size:512" json:"video_url"`
	Quiz        *Quiz     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"quiz,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Quiz is the question set attached to a lesson.
type Quiz struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	LessonID  uint       `gorm:"uniqueIndex;not null" json:"lesson_id"`
	Lesson    Lesson     `gorm:"foreignKey:LessonID" json:"-"`
	Questions []Question `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PointsPerQuestion is the fixed point value of every quiz question.
const PointsPerQuestion = 10

// MaxScore returns the maximum score achievable on the quiz.
func (q Quiz) MaxScore() int {
	return len(q.Questions) * PointsPerQuestion
}

// Question belongs to a quiz.
type Question struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuizID       uint      `gorm:"index;not null" json:"quiz_id"`
	QuestionText string    `gorm:"type:text;not null" json:"question_text"`
	CreatedAt    time.Time `json:"created_at"`
}
