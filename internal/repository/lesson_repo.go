package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/models"
)

// LessonRepository defines data operations for lessons and their quizzes.
type LessonRepository interface {
	List(ctx context.Context) ([]models.Lesson, error)
	GetByID(ctx context.Context, id uint) (models.Lesson, error)
	Create(ctx context.Context, lesson *models.Lesson) error
	ReplaceQuiz(ctx context.Context, lessonID uint, questions []models.Question) (models.Quiz, error)
}

type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository instantiates the repository.
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) List(ctx context.Context) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&lessons).Error; err != nil {
		return nil, err
	}

	return lessons, nil
}

func (r *lessonRepository) GetByID(ctx context.Context, id uint) (models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).
		Preload("Quiz.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id ASC") }).
		First(&lesson, id).Error; err != nil {
		return models.Lesson{}, err
	}

	return lesson, nil
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

// ReplaceQuiz creates the lesson's quiz when absent and swaps its question
// set atomically otherwise. Existing submissions keep pointing at the quiz.
func (r *lessonRepository) ReplaceQuiz(ctx context.Context, lessonID uint, questions []models.Question) (models.Quiz, error) {
	var quiz models.Quiz

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.Quiz{LessonID: lessonID}).FirstOrCreate(&quiz).Error; err != nil {
			return err
		}

		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].QuizID = quiz.ID
		}

		return tx.Create(&questions).Error
	})
	if err != nil {
		return models.Quiz{}, err
	}

	quiz.Questions = questions
	return quiz, nil
}
