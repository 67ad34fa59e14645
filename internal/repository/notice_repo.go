package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/models"
)

// NoticeRepository defines data operations for the notice board.
type NoticeRepository interface {
	Latest(ctx context.Context) (models.Notice, error)
	Replace(ctx context.Context, notice *models.Notice) error
	Count(ctx context.Context) (int64, error)
}

type noticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository instantiates the repository.
func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) Latest(ctx context.Context) (models.Notice, error) {
	var notice models.Notice
	if err := r.db.WithContext(ctx).Order("created_at DESC").First(&notice).Error; err != nil {
		return models.Notice{}, err
	}

	return notice, nil
}

func (r *noticeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Notice{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// Replace clears the board and posts the new notice in one transaction.
func (r *noticeRepository) Replace(ctx context.Context, notice *models.Notice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Notice{}).Error; err != nil {
			return err
		}

		return tx.Create(notice).Error
	})
}
