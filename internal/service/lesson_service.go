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

// ErrLessonNotFound indicates the lesson does not exist.
var ErrLessonNotFound = errors.New("lesson not found")

// LessonService manages lessons and their attached quizzes.
type LessonService interface {
	List(ctx context.Context) ([]dto.LessonResponse, error)
	Create(ctx context.Context, principal Principal, payload dto.LessonCreateRequest) (dto.LessonResponse, error)
	ReplaceQuiz(ctx context.Context, principal Principal, lessonID uint, payload dto.QuizCreateRequest) (dto.QuizResponse, error)
	GetLessonQuiz(ctx context.Context, principal Principal, lessonID uint) (dto.LessonQuizResponse, error)
}

type lessonService struct {
	lessons     repository.LessonRepository
	submissions repository.QuizSubmissionRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewLessonService constructs a LessonService instance.
func NewLessonService(lessons repository.LessonRepository, submissions repository.QuizSubmissionRepository, validate *validator.Validate, logger zerolog.Logger) LessonService {
	return &lessonService{
		lessons:     lessons,
		submissions: submissions,
		validator:   validate,
		logger:      logger.With().Str("component", "lesson_service").Logger(),
	}
}

func (s *lessonService) List(ctx context.Context) ([]dto.LessonResponse, error) {
	lessons, err := s.lessons.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewLessonResponseSlice(lessons), nil
}

func (s *lessonService) Create(ctx context.Context, principal Principal, payload dto.LessonCreateRequest) (dto.LessonResponse, error) {
	if !principal.IsTeacher() {
		return dto.LessonResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.LessonResponse{}, err
	}

	lesson := models.Lesson{
		Title:       payload.Title,
		Description: payload.Description,
		VideoURL:    payload.VideoURL,
	}

	if err := s.lessons.Create(ctx, &lesson); err != nil {
		return dto.LessonResponse{}, err
	}

	s.logger.Info().Uint("lesson_id", lesson.ID).Msg("lesson created")

	return dto.NewLessonResponse(lesson), nil
}

// ReplaceQuiz creates or fully replaces the question set of a lesson's quiz.
func (s *lessonService) ReplaceQuiz(ctx context.Context, principal Principal, lessonID uint, payload dto.QuizCreateRequest) (dto.QuizResponse, error) {
	if !principal.IsTeacher() {
		return dto.QuizResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	if _, err := s.lessons.GetByID(ctx, lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrLessonNotFound
		}
		return dto.QuizResponse{}, err
	}

	questions := make([]models.Question, 0, len(payload.Questions))
	for _, question := range payload.Questions {
		questions = append(questions, models.Question{QuestionText: question.QuestionText})
	}

	quiz, err := s.lessons.ReplaceQuiz(ctx, lessonID, questions)
	if err != nil {
		return dto.QuizResponse{}, err
	}

	s.logger.Info().Uint("lesson_id", lessonID).Int("questions", len(questions)).Msg("quiz replaced")

	return dto.NewQuizResponse(quiz), nil
}

// GetLessonQuiz returns the lesson, its quiz, and the caller's submission
// status in a single response.
func (s *lessonService) GetLessonQuiz(ctx context.Context, principal Principal, lessonID uint) (dto.LessonQuizResponse, error) {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonQuizResponse{}, ErrLessonNotFound
		}
		return dto.LessonQuizResponse{}, err
	}

	response := dto.LessonQuizResponse{Lesson: dto.NewLessonResponse(lesson)}
	if lesson.Quiz == nil {
		return response, nil
	}

	quiz := dto.NewQuizResponse(*lesson.Quiz)
	response.Quiz = &quiz

	submission, err := s.submissions.GetByQuizAndUser(ctx, lesson.Quiz.ID, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response, nil
		}
		return dto.LessonQuizResponse{}, err
	}

	status := dto.NewQuizSubmissionStatus(submission)
	response.Submission = &status

	return response, nil
}
