package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/repository"
)

// DefaultLeaderboardSize is the number of students shown on the board.
const DefaultLeaderboardSize = 10

const leaderboardCacheKey = "leaderboard:top"

// LeaderboardService serves the ranked projection over accumulated points.
// Results may be cached briefly; a board that trails a just-committed grade
// is acceptable.
type LeaderboardService interface {
	Top(ctx context.Context) ([]dto.UserResponse, error)
}

type leaderboardService struct {
	users    repository.UserRepository
	cache    *redis.Client
	cacheTTL time.Duration
	limit    int
	logger   zerolog.Logger
}

// NewLeaderboardService constructs a LeaderboardService instance. The cache
// client may be nil, in which case every call hits the database.
func NewLeaderboardService(users repository.UserRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) LeaderboardService {
	return &leaderboardService{
		users:    users,
		cache:    cache,
		cacheTTL: ttl,
		limit:    DefaultLeaderboardSize,
		logger:   logger.With().Str("component", "leaderboard_service").Logger(),
	}
}

func (s *leaderboardService) Top(ctx context.Context) ([]dto.UserResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var response []dto.UserResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("leaderboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read leaderboard cache")
		}
	}

	students, err := s.users.TopStudents(ctx, s.limit)
	if err != nil {
		return nil, err
	}

	response := dto.NewUserResponseSlice(students)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, leaderboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store leaderboard cache")
			}
		}
	}

	return response, nil
}
