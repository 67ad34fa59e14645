package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/models"
)

// QuizRepository defines read operations for quizzes outside their lesson.
type QuizRepository interface {
	GetByID(ctx context.Context, id uint) (models.Quiz, error)
}

type quizRepository struct {
	db *gorm.DB
}

// NewQuizRepository instantiates the repository.
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) GetByID(ctx context.Context, id uint) (models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id ASC") }).
		First(&quiz, id).Error; err != nil {
		return models.Quiz{}, err
	}

	return quiz, nil
}
