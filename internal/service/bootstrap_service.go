package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecolearners/platform-api/internal/models"
	"github.com/ecolearners/platform-api/internal/repository"
)

// BootstrapService seeds demo content into an empty store. Each section is
// gated by an is-empty check so the procedure is idempotent and safe to run
// on every deployment.
type BootstrapService interface {
	Run(ctx context.Context) error
}

type bootstrapService struct {
	users   repository.UserRepository
	games   repository.GameRepository
	notices repository.NoticeRepository
	logger  zerolog.Logger
}

// NewBootstrapService constructs a BootstrapService instance.
func NewBootstrapService(users repository.UserRepository, games repository.GameRepository, notices repository.NoticeRepository, logger zerolog.Logger) BootstrapService {
	return &bootstrapService{
		users:   users,
		games:   games,
		notices: notices,
		logger:  logger.With().Str("component", "bootstrap_service").Logger(),
	}
}

func (s *bootstrapService) Run(ctx context.Context) error {
	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	if err := s.seedGames(ctx); err != nil {
		return err
	}

	return s.seedNotice(ctx)
}

func (s *bootstrapService) seedUsers(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	studentHash, err := HashPassword("demo1234")
	if err != nil {
		return err
	}
	teacherHash, err := HashPassword("teacher1234")
	if err != nil {
		return err
	}

	student := models.User{
		Email:          "demo@student.local",
		Name:           "Demo Student",
		HashedPassword: studentHash,
		Role:           models.RoleStudent,
		Profile:        &models.UserProfile{},
	}
	teacher := models.User{
		Email:          "teacher@school.local",
		Name:           "Demo Teacher",
		HashedPassword: teacherHash,
		Role:           models.RoleTeacher,
	}

	if err := s.users.Create(ctx, &student); err != nil {
		return err
	}
	if err := s.users.Create(ctx, &teacher); err != nil {
		return err
	}

	s.logger.Info().Msg("demo accounts seeded")

	return nil
}

func (s *bootstrapService) seedGames(ctx context.Context) error {
	count, err := s.games.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	games := []models.Game{
		{Name: "Typing Speed Test", URL: "https://play.typeracer.com/", Skill: "Typing Speed"},
		{Name: "Logical Puzzles", URL: "https://www.brainzilla.com/logic/logic-grid-puzzles/", Skill: "Logical Skill"},
		{Name: "Math Playground", URL: "https://www.mathplayground.com/", Skill: "Mathematical Ability"},
	}

	for i := range games {
		if err := s.games.Create(ctx, &games[i]); err != nil {
			return err
		}
	}

	s.logger.Info().Int("games", len(games)).Msg("game catalogue seeded")

	return nil
}

func (s *bootstrapService) seedNotice(ctx context.Context) error {
	count, err := s.notices.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	notice := models.Notice{Message: "Welcome to the new EcoLearners Platform! Please complete your profile."}
	if err := s.notices.Replace(ctx, &notice); err != nil {
		return err
	}

	s.logger.Info().Msg("welcome notice seeded")

	return nil
}
