package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/models"
)

// TaskSubmissionRepository defines ledger operations for task uploads.
type TaskSubmissionRepository interface {
	Create(ctx context.Context, submission *models.TaskSubmission) error
	GetByID(ctx context.Context, id uint) (models.TaskSubmission, error)
	GetByTaskAndUser(ctx context.Context, taskID, userID uint) (models.TaskSubmission, error)
	ListUngraded(ctx context.Context) ([]models.TaskSubmission, error)
	Grade(ctx context.Context, id uint, points int) error
	AwardedPointsTotal(ctx context.Context, userID uint) (int, error)
}

type taskSubmissionRepository struct {
	db *gorm.DB
}

// NewTaskSubmissionRepository instantiates the repository.
func NewTaskSubmissionRepository(db *gorm.DB) TaskSubmissionRepository {
	return &taskSubmissionRepository{db: db}
}

func (r *taskSubmissionRepository) Create(ctx context.Context, submission *models.TaskSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *taskSubmissionRepository) GetByID(ctx context.Context, id uint) (models.TaskSubmission, error) {
	var submission models.TaskSubmission
	if err := r.db.WithContext(ctx).
		Preload("Task").
		Preload("Student").
		First(&submission, id).Error; err != nil {
		return models.TaskSubmission{}, err
	}

	return submission, nil
}

func (r *taskSubmissionRepository) GetByTaskAndUser(ctx context.Context, taskID, userID uint) (models.TaskSubmission, error) {
	var submission models.TaskSubmission
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Where("user_id = ?", userID).
		First(&submission).Error; err != nil {
		return models.TaskSubmission{}, err
	}

	return submission, nil
}

func (r *taskSubmissionRepository) ListUngraded(ctx context.Context) ([]models.TaskSubmission, error) {
	var submissions []models.TaskSubmission
	if err := r.db.WithContext(ctx).
		Preload("Task").
		Preload("Student").
		Where("approved = ?", false).
		Order("submitted_at ASC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

// Grade approves the submission and credits the student's points in one
// transaction, guarded the same way as quiz grading: the UPDATE matches only
// unapproved rows, so exactly one of two racing grade calls succeeds.
func (r *taskSubmissionRepository) Grade(ctx context.Context, id uint, points int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submission models.TaskSubmission
		if err := tx.First(&submission, id).Error; err != nil {
			return err
		}

		result := tx.Model(&models.TaskSubmission{}).
			Where("id = ? AND approved = ?", id, false).
			Updates(map[string]interface{}{"approved": true, "points_awarded": points})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyGraded
		}

		return tx.Model(&models.User{}).
			Where("id = ?", submission.UserID).
			UpdateColumn("points", gorm.Expr("points + ?", points)).Error
	})
}

// AwardedPointsTotal sums points over the student's approved task submissions.
func (r *taskSubmissionRepository) AwardedPointsTotal(ctx context.Context, userID uint) (int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.TaskSubmission{}).
		Where("user_id = ?", userID).
		Where("approved = ?", true).
		Select("COALESCE(SUM(points_awarded), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}

	return int(total), nil
}
