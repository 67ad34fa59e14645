package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/models"
	"github.com/ecolearners/platform-api/internal/repository"
)

// ErrGameNotFound indicates the game does not exist.
var ErrGameNotFound = errors.New("game not found")

// GameService manages the mini-game catalogue and recorded scores.
type GameService interface {
	List(ctx context.Context) ([]dto.GameResponse, error)
	Create(ctx context.Context, principal Principal, payload dto.GameCreateRequest) (dto.GameResponse, error)
	Delete(ctx context.Context, principal Principal, gameID uint) error
	SubmitScore(ctx context.Context, principal Principal, payload dto.GameScoreRequest) error
}

type gameService struct {
	games     repository.GameRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGameService constructs a GameService instance.
func NewGameService(games repository.GameRepository, validate *validator.Validate, logger zerolog.Logger) GameService {
	return &gameService{
		games:     games,
		validator: validate,
		logger:    logger.With().Str("component", "game_service").Logger(),
	}
}

func (s *gameService) List(ctx context.Context) ([]dto.GameResponse, error) {
	games, err := s.games.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewGameResponseSlice(games), nil
}

func (s *gameService) Create(ctx context.Context, principal Principal, payload dto.GameCreateRequest) (dto.GameResponse, error) {
	if !principal.IsTeacher() {
		return dto.GameResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.GameResponse{}, err
	}

	game := models.Game{
		Name:  payload.Name,
		URL:   payload.URL,
		Skill: payload.Skill,
	}

	if err := s.games.Create(ctx, &game); err != nil {
		return dto.GameResponse{}, err
	}

	s.logger.Info().Uint("game_id", game.ID).Str("skill", game.Skill).Msg("game added")

	return dto.NewGameResponse(game), nil
}

// Delete removes the game and, through the repository, all of its scores.
// Reports computed afterwards simply no longer see the skill contributions.
func (s *gameService) Delete(ctx context.Context, principal Principal, gameID uint) error {
	if !principal.IsTeacher() {
		return ErrForbidden
	}

	if _, err := s.games.GetByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	if err := s.games.Delete(ctx, gameID); err != nil {
		return err
	}

	s.logger.Info().Uint("game_id", gameID).Msg("game deleted")

	return nil
}

func (s *gameService) SubmitScore(ctx context.Context, principal Principal, payload dto.GameScoreRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	if _, err := s.games.GetByID(ctx, payload.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	score := models.GameScore{
		UserID: principal.ID,
		GameID: payload.GameID,
		Score:  payload.Score,
	}

	if err := s.games.CreateScore(ctx, &score); err != nil {
		return err
	}

	s.logger.Info().Uint("game_id", payload.GameID).Uint("user_id", principal.ID).Int("score", payload.Score).Msg("game score recorded")

	return nil
}
