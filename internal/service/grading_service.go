package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/repository"
)

var (
	// ErrSubmissionNotFound indicates the submission does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrAlreadyGraded indicates grading was attempted on an already graded
	// submission. The transition is one way and never overwritten.
	ErrAlreadyGraded = errors.New("submission already graded")
	// ErrInvalidScore indicates the awarded points fall outside the item's
	// point budget.
	ErrInvalidScore = errors.New("awarded points exceed item maximum")
)

// GradingService is the teacher-facing grading workflow: the queue of
// ungraded submissions and the one-way graded transition that credits points.
type GradingService interface {
	TaskQueue(ctx context.Context, principal Principal) ([]dto.TaskSubmissionSummary, error)
	QuizQueue(ctx context.Context, principal Principal) ([]dto.QuizSubmissionSummary, error)
	QuizSubmissionDetail(ctx context.Context, principal Principal, submissionID uint) (dto.QuizSubmissionDetail, error)
	GradeTask(ctx context.Context, principal Principal, submissionID uint, payload dto.GradeRequest) error
	GradeQuiz(ctx context.Context, principal Principal, submissionID uint, payload dto.GradeRequest) error
}

type gradingService struct {
	taskSubmissions repository.TaskSubmissionRepository
	quizSubmissions repository.QuizSubmissionRepository
	validator       *validator.Validate
	events          EventPublisher
	logger          zerolog.Logger
}

// NewGradingService constructs a GradingService instance.
func NewGradingService(taskSubs repository.TaskSubmissionRepository, quizSubs repository.QuizSubmissionRepository, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) GradingService {
	return &gradingService{
		taskSubmissions: taskSubs,
		quizSubmissions: quizSubs,
		validator:       validate,
		events:          events,
		logger:          logger.With().Str("component", "grading_service").Logger(),
	}
}

func (s *gradingService) TaskQueue(ctx context.Context, principal Principal) ([]dto.TaskSubmissionSummary, error) {
	if !principal.IsTeacher() {
		return nil, ErrForbidden
	}

	submissions, err := s.taskSubmissions.ListUngraded(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.TaskSubmissionSummary, 0, len(submissions))
	for _, submission := range submissions {
		summaries = append(summaries, dto.TaskSubmissionSummary{
			ID:          submission.ID,
			StudentName: submission.Student.Name,
			TaskTitle:   submission.Task.Title,
			FileURL:     submission.FileURL,
			MaxPoints:   submission.Task.Points,
			SubmittedAt: submission.SubmittedAt,
		})
	}

	return summaries, nil
}

func (s *gradingService) QuizQueue(ctx context.Context, principal Principal) ([]dto.QuizSubmissionSummary, error) {
	if !principal.IsTeacher() {
		return nil, ErrForbidden
	}

	submissions, err := s.quizSubmissions.ListUngraded(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.QuizSubmissionSummary, 0, len(submissions))
	for _, submission := range submissions {
		summaries = append(summaries, dto.QuizSubmissionSummary{
			ID:          submission.ID,
			StudentName: submission.Student.Name,
			QuizTitle:   submission.Quiz.Lesson.Title,
			SubmittedAt: submission.SubmittedAt,
		})
	}

	return summaries, nil
}

func (s *gradingService) QuizSubmissionDetail(ctx context.Context, principal Principal, submissionID uint) (dto.QuizSubmissionDetail, error) {
	if !principal.IsTeacher() {
		return dto.QuizSubmissionDetail{}, ErrForbidden
	}

	submission, err := s.quizSubmissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizSubmissionDetail{}, ErrSubmissionNotFound
		}
		return dto.QuizSubmissionDetail{}, err
	}

	answers := make([]dto.AnswerResponse, 0, len(submission.Answers))
	for _, answer := range submission.Answers {
		answers = append(answers, dto.AnswerResponse{
			QuestionText: answer.Question.QuestionText,
			AnswerText:   answer.AnswerText,
		})
	}

	return dto.QuizSubmissionDetail{
		ID:          submission.ID,
		StudentName: submission.Student.Name,
		QuizTitle:   submission.Quiz.Lesson.Title,
		Answers:     answers,
		TotalPoints: submission.Quiz.MaxScore(),
	}, nil
}

// GradeTask approves a task submission and credits the student's points. The
// two writes commit together inside the repository transaction; a second
// grade attempt fails with ErrAlreadyGraded and leaves points untouched.
func (s *gradingService) GradeTask(ctx context.Context, principal Principal, submissionID uint, payload dto.GradeRequest) error {
	tracer := otel.Tracer("github.com/ecolearners/platform-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.task")
	span.SetAttributes(
		attribute.Int64("grading.submission_id", int64(submissionID)),
		attribute.Int64("grading.grader_id", int64(principal.ID)),
	)
	defer span.End()

	if !principal.IsTeacher() {
		span.SetStatus(codes.Error, "forbidden")
		return ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return err
	}

	submission, err := s.taskSubmissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "submission_not_found")
			return ErrSubmissionNotFound
		}
		span.RecordError(err)
		return err
	}

	if payload.Points < 0 || payload.Points > submission.Task.Points {
		span.SetStatus(codes.Error, "score_out_of_bounds")
		return ErrInvalidScore
	}

	if err := s.grade(func() error {
		return s.taskSubmissions.Grade(ctx, submissionID, payload.Points)
	}); err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(attribute.Int("grading.points", payload.Points))
	s.logger.Info().Uint("submission_id", submissionID).Int("points", payload.Points).Msg("task submission graded")
	s.publishGraded("task", submissionID, submission.UserID, payload.Points)

	return nil
}

// GradeQuiz mirrors GradeTask for quiz submissions; the maximum is the fixed
// per-question formula rather than a stored point budget.
func (s *gradingService) GradeQuiz(ctx context.Context, principal Principal, submissionID uint, payload dto.GradeRequest) error {
	tracer := otel.Tracer("github.com/ecolearners/platform-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.quiz")
	span.SetAttributes(
		attribute.Int64("grading.submission_id", int64(submissionID)),
		attribute.Int64("grading.grader_id", int64(principal.ID)),
	)
	defer span.End()

	if !principal.IsTeacher() {
		span.SetStatus(codes.Error, "forbidden")
		return ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return err
	}

	submission, err := s.quizSubmissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "submission_not_found")
			return ErrSubmissionNotFound
		}
		span.RecordError(err)
		return err
	}

	if payload.Points < 0 || payload.Points > submission.Quiz.MaxScore() {
		span.SetStatus(codes.Error, "score_out_of_bounds")
		return ErrInvalidScore
	}

	if err := s.grade(func() error {
		return s.quizSubmissions.Grade(ctx, submissionID, payload.Points)
	}); err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(attribute.Int("grading.points", payload.Points))
	s.logger.Info().Uint("submission_id", submissionID).Int("points", payload.Points).Msg("quiz submission graded")
	s.publishGraded("quiz", submissionID, submission.UserID, payload.Points)

	return nil
}

func (s *gradingService) grade(apply func() error) error {
	if err := apply(); err != nil {
		if errors.Is(err, repository.ErrAlreadyGraded) {
			return ErrAlreadyGraded
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}

	return nil
}

type gradedEvent struct {
	Kind         string `json:"kind"`
	SubmissionID uint   `json:"submission_id"`
	StudentID    uint   `json:"student_id"`
	Points       int    `json:"points"`
}

func (s *gradingService) publishGraded(kind string, submissionID, studentID uint, points int) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(gradedEvent{
		Kind:         kind,
		SubmissionID: submissionID,
		StudentID:    studentID,
		Points:       points,
	})
	if err != nil {
		return
	}

	if err := s.events.Publish(SubjectSubmissionGraded, payload); err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submissionID).Msg("failed to publish graded event")
	}
}
