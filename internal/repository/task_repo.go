package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/models"
)

// TaskRepository defines data operations for assigned tasks.
type TaskRepository interface {
	ListByDeadline(ctx context.Context) ([]models.AssignedTask, error)
	ListNewestFirst(ctx context.Context) ([]models.AssignedTask, error)
	GetByID(ctx context.Context, id uint) (models.AssignedTask, error)
	Create(ctx context.Context, task *models.AssignedTask) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository instantiates the repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) ListByDeadline(ctx context.Context) ([]models.AssignedTask, error) {
	var tasks []models.AssignedTask
	if err := r.db.WithContext(ctx).Order("deadline ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) ListNewestFirst(ctx context.Context) ([]models.AssignedTask, error) {
	var tasks []models.AssignedTask
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uint) (models.AssignedTask, error) {
	var task models.AssignedTask
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return models.AssignedTask{}, err
	}

	return task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *models.AssignedTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}
