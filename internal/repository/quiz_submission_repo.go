package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/models"
)

// ErrAlreadyGraded reports an attempt to grade a submission a second time.
// Grading is a one-way transition; the guarded update below makes sure two
// concurrent grade calls produce exactly one success.
var ErrAlreadyGraded = errors.New("submission already graded")

// QuizSubmissionRepository defines ledger operations for quiz attempts.
type QuizSubmissionRepository interface {
	Create(ctx context.Context, submission *models.QuizSubmission) error
	GetByID(ctx context.Context, id uint) (models.QuizSubmission, error)
	GetByQuizAndUser(ctx context.Context, quizID, userID uint) (models.QuizSubmission, error)
	ListUngraded(ctx context.Context) ([]models.QuizSubmission, error)
	Grade(ctx context.Context, id uint, score int) error
	GradedScoreTotal(ctx context.Context, userID uint) (int, error)
}

type quizSubmissionRepository struct {
	db *gorm.DB
}

// NewQuizSubmissionRepository instantiates the repository.
func NewQuizSubmissionRepository(db *gorm.DB) QuizSubmissionRepository {
	return &quizSubmissionRepository{db: db}
}

// Create inserts the submission together with its answers. The composite
// unique index on (quiz_id, user_id) surfaces concurrent duplicates as
// gorm.ErrDuplicatedKey.
func (r *quizSubmissionRepository) Create(ctx context.Context, submission *models.QuizSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *quizSubmissionRepository) GetByID(ctx context.Context, id uint) (models.QuizSubmission, error) {
	var submission models.QuizSubmission
	if err := r.db.WithContext(ctx).
		Preload("Answers.Question").
		Preload("Quiz.Questions").
		Preload("Quiz.Lesson").
		Preload("Student").
		First(&submission, id).Error; err != nil {
		return models.QuizSubmission{}, err
	}

	return submission, nil
}

func (r *quizSubmissionRepository) GetByQuizAndUser(ctx context.Context, quizID, userID uint) (models.QuizSubmission, error) {
	var submission models.QuizSubmission
	if err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Where("user_id = ?", userID).
		First(&submission).Error; err != nil {
		return models.QuizSubmission{}, err
	}

	return submission, nil
}

func (r *quizSubmissionRepository) ListUngraded(ctx context.Context) ([]models.QuizSubmission, error) {
	var submissions []models.QuizSubmission
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Quiz.Lesson").
		Where("is_graded = ?", false).
		Order("submitted_at ASC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

// Grade marks the submission graded and credits the student's points in one
// transaction. The graded flag acts as the guard: the UPDATE only matches
// ungraded rows, so a second grader observes zero affected rows and the
// points increment never runs twice.
func (r *quizSubmissionRepository) Grade(ctx context.Context, id uint, score int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submission models.QuizSubmission
		if err := tx.First(&submission, id).Error; err != nil {
			return err
		}

		result := tx.Model(&models.QuizSubmission{}).
			Where("id = ? AND is_graded = ?", id, false).
			Updates(map[string]interface{}{"is_graded": true, "score": score})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyGraded
		}

		return tx.Model(&models.User{}).
			Where("id = ?", submission.UserID).
			UpdateColumn("points", gorm.Expr("points + ?", score)).Error
	})
}

// GradedScoreTotal sums scores over the student's graded quiz submissions.
func (r *quizSubmissionRepository) GradedScoreTotal(ctx context.Context, userID uint) (int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.QuizSubmission{}).
		Where("user_id = ?", userID).
		Where("is_graded = ?", true).
		Select("COALESCE(SUM(score), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}

	return int(total), nil
}
