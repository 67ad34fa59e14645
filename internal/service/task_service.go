package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/models"
	"github.com/ecolearners/platform-api/internal/repository"
)

var (
	// ErrTaskNotFound indicates the assigned task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrDeadlineInPast rejects assigning a task whose deadline already passed.
	ErrDeadlineInPast = errors.New("deadline cannot be in the past")
	// ErrUnsupportedFileType rejects uploads outside the allowed formats.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// TaskService manages assigned tasks and student file submissions.
type TaskService interface {
	ListForStudent(ctx context.Context, principal Principal) ([]dto.TaskResponse, error)
	ListAll(ctx context.Context, principal Principal) ([]dto.TaskResponse, error)
	Create(ctx context.Context, principal Principal, payload dto.TaskCreateRequest) (dto.TaskResponse, error)
	Submit(ctx context.Context, principal Principal, taskID uint, file *multipart.FileHeader) (uint, error)
}

type taskService struct {
	tasks       repository.TaskRepository
	submissions repository.TaskSubmissionRepository
	validator   *validator.Validate
	uploader    FileUploader
	logger      zerolog.Logger
	now         func() time.Time
}

// NewTaskService constructs a TaskService instance.
func NewTaskService(tasks repository.TaskRepository, submissions repository.TaskSubmissionRepository, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) TaskService {
	return &taskService{
		tasks:       tasks,
		submissions: submissions,
		validator:   validate,
		uploader:    uploader,
		logger:      logger.With().Str("component", "task_service").Logger(),
		now:         time.Now,
	}
}

// ListForStudent returns tasks ordered by deadline, each annotated with the
// caller's submission status when one exists.
func (s *taskService) ListForStudent(ctx context.Context, principal Principal) ([]dto.TaskResponse, error) {
	tasks, err := s.tasks.ListByDeadline(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response := dto.NewTaskResponse(task)

		submission, err := s.submissions.GetByTaskAndUser(ctx, task.ID, principal.ID)
		if err == nil {
			status := dto.NewTaskSubmissionStatus(submission)
			response.SubmissionStatus = &status
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		responses = append(responses, response)
	}

	return responses, nil
}

func (s *taskService) ListAll(ctx context.Context, principal Principal) ([]dto.TaskResponse, error) {
	if !principal.IsTeacher() {
		return nil, ErrForbidden
	}

	tasks, err := s.tasks.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, dto.NewTaskResponse(task))
	}

	return responses, nil
}

func (s *taskService) Create(ctx context.Context, principal Principal, payload dto.TaskCreateRequest) (dto.TaskResponse, error) {
	if !principal.IsTeacher() {
		return dto.TaskResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.TaskResponse{}, err
	}

	deadline, err := time.Parse("2006-01-02", payload.Deadline)
	if err != nil {
		return dto.TaskResponse{}, err
	}

	// The task stays open through the end of the deadline day.
	deadline = deadline.Add(24*time.Hour - time.Second)
	if deadline.Before(s.now()) {
		return dto.TaskResponse{}, ErrDeadlineInPast
	}

	task := models.AssignedTask{
		Title:       payload.Title,
		Description: payload.Description,
		Points:      payload.Points,
		Deadline:    deadline,
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return dto.TaskResponse{}, err
	}

	s.logger.Info().Uint("task_id", task.ID).Msg("task assigned")

	return dto.NewTaskResponse(task), nil
}

// Submit stores the student's file in the blob store and records the single
// ungraded submission. The blob name deterministically encodes the
// (user, task, original name) triple so names never collide across pairs.
func (s *taskService) Submit(ctx context.Context, principal Principal, taskID uint, file *multipart.FileHeader) (uint, error) {
	if file == nil {
		return 0, fmt.Errorf("submission file is required")
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrTaskNotFound
		}
		return 0, err
	}

	if _, err := s.submissions.GetByTaskAndUser(ctx, task.ID, principal.ID); err == nil {
		return 0, ErrDuplicateSubmission
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if err := validateSubmissionFileType(file); err != nil {
		return 0, err
	}

	reader, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	blobName := fmt.Sprintf("%d_%d_%s", principal.ID, task.ID, file.Filename)
	fileURL, err := s.uploader.Upload(ctx, blobName, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to upload file: %w", err)
	}

	submission := models.TaskSubmission{
		TaskID:  task.ID,
		UserID:  principal.ID,
		FileURL: fileURL,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateSubmission
		}
		return 0, err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Uint("task_id", task.ID).Uint("user_id", principal.ID).Msg("task submitted")

	return submission.ID, nil
}

func validateSubmissionFileType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	allowed := []string{"application/pdf", "application/zip", "application/x-zip-compressed", "text/plain", "image/png", "image/jpeg"}
	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedFileType, mime.String())
}
