package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/models"
)

// SkillAverage is one row of the per-skill aggregate.
type SkillAverage struct {
	Skill   string
	Average float64
}

// GameRepository defines data operations for the game catalogue and scores.
type GameRepository interface {
	List(ctx context.Context) ([]models.Game, error)
	GetByID(ctx context.Context, id uint) (models.Game, error)
	Create(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id uint) error
	CreateScore(ctx context.Context, score *models.GameScore) error
	SkillAverages(ctx context.Context, userID uint) ([]SkillAverage, error)
	Count(ctx context.Context) (int64, error)
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository instantiates the repository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) List(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&games).Error; err != nil {
		return nil, err
	}

	return games, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id uint) (models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return models.Game{}, err
	}

	return game, nil
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

// Delete removes the game and its scores together, so reports never see a
// score whose game is gone.
func (r *gameRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", id).Delete(&models.GameScore{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Game{}, id).Error
	})
}

func (r *gameRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Game{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *gameRepository) CreateScore(ctx context.Context, score *models.GameScore) error {
	return r.db.WithContext(ctx).Create(score).Error
}

// SkillAverages computes the mean score per skill over the student's game
// scores. The inner join drops scores whose game no longer exists; skills
// without surviving scores simply produce no row.
func (r *gameRepository) SkillAverages(ctx context.Context, userID uint) ([]SkillAverage, error) {
	var rows []SkillAverage
	if err := r.db.WithContext(ctx).Model(&models.GameScore{}).
		Select("games.skill AS skill, AVG(game_scores.score) AS average").
		Joins("INNER JOIN games ON games.id = game_scores.game_id").
		Where("game_scores.user_id = ?", userID).
		Group("games.skill").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
