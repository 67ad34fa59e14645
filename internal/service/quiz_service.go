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

var (
	// ErrQuizNotFound indicates the quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrDuplicateSubmission indicates the student already submitted against
	// this item. Submissions are one-shot; retries must surface this error
	// rather than silently repeating the effect.
	ErrDuplicateSubmission = errors.New("already submitted")
	// ErrInvalidAnswer indicates an answer references a question outside the
	// quiz's question set.
	ErrInvalidAnswer = errors.New("answer references unknown question")
)

// QuizService handles student quiz submissions.
type QuizService interface {
	Submit(ctx context.Context, principal Principal, quizID uint, payload dto.QuizSubmitRequest) (uint, error)
}

type quizService struct {
	quizzes     repository.QuizRepository
	submissions repository.QuizSubmissionRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewQuizService constructs a QuizService instance.
func NewQuizService(quizzes repository.QuizRepository, submissions repository.QuizSubmissionRepository, validate *validator.Validate, logger zerolog.Logger) QuizService {
	return &quizService{
		quizzes:     quizzes,
		submissions: submissions,
		validator:   validate,
		logger:      logger.With().Str("component", "quiz_service").Logger(),
	}
}

// Submit records the student's single ungraded attempt. Every answer must
// reference a question belonging to the quiz; no points are awarded here.
func (s *quizService) Submit(ctx context.Context, principal Principal, quizID uint, payload dto.QuizSubmitRequest) (uint, error) {
	if err := s.validator.Struct(payload); err != nil {
		return 0, err
	}

	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrQuizNotFound
		}
		return 0, err
	}

	known := make(map[uint]struct{}, len(quiz.Questions))
	for _, question := range quiz.Questions {
		known[question.ID] = struct{}{}
	}
	for _, answer := range payload.Answers {
		if _, ok := known[answer.QuestionID]; !ok {
			return 0, ErrInvalidAnswer
		}
	}

	if _, err := s.submissions.GetByQuizAndUser(ctx, quizID, principal.ID); err == nil {
		return 0, ErrDuplicateSubmission
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	answers := make([]models.Answer, 0, len(payload.Answers))
	for _, answer := range payload.Answers {
		answers = append(answers, models.Answer{
			QuestionID: answer.QuestionID,
			AnswerText: answer.AnswerText,
		})
	}

	submission := models.QuizSubmission{
		QuizID:  quizID,
		UserID:  principal.ID,
		Answers: answers,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		// The unique index catches the race two concurrent submits can win
		// past the lookup above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateSubmission
		}
		return 0, err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Uint("quiz_id", quizID).Uint("user_id", principal.ID).Msg("quiz submitted")

	return submission.ID, nil
}
