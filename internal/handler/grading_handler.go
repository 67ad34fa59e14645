package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/service"
	"github.com/ecolearners/platform-api/internal/utils"
)

// GradingHandler exposes the teacher grading workflow: ungraded queues,
// submission detail and the grade endpoints.
type GradingHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewGradingHandler builds a grading handler instance.
func NewGradingHandler(service service.GradingService, logger zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		service: service,
		logger:  logger.With().Str("component", "grading_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *GradingHandler) Register(router fiber.Router) {
	router.Get("/tasks", h.taskQueue)
	router.Get("/quizzes", h.quizQueue)
	router.Get("/quizzes/:id", h.quizDetail)
	router.Post("/tasks/:id/grade", h.gradeTask)
	router.Post("/quizzes/:id/grade", h.gradeQuiz)
}

func (h *GradingHandler) taskQueue(c *fiber.Ctx) error {
	submissions, err := h.service.TaskQueue(c.Context(), principalFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "ungraded task submissions retrieved", submissions)
}

func (h *GradingHandler) quizQueue(c *fiber.Ctx) error {
	submissions, err := h.service.QuizQueue(c.Context(), principalFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "ungraded quiz submissions retrieved", submissions)
}

func (h *GradingHandler) quizDetail(c *fiber.Ctx) error {
	submissionID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	detail, err := h.service.QuizSubmissionDetail(c.Context(), principalFromContext(c), submissionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission retrieved", detail)
}

func (h *GradingHandler) gradeTask(c *fiber.Ctx) error {
	return h.grade(c, h.service.GradeTask)
}

func (h *GradingHandler) gradeQuiz(c *fiber.Ctx) error {
	return h.grade(c, h.service.GradeQuiz)
}

func (h *GradingHandler) grade(c *fiber.Ctx, apply func(ctx context.Context, principal service.Principal, submissionID uint, payload dto.GradeRequest) error) error {
	submissionID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := apply(c.Context(), principalFromContext(c), submissionID, payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission graded", fiber.Map{"submission_id": submissionID})
}

func (h *GradingHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, service.ErrAlreadyGraded):
		return utils.SendError(c, fiber.StatusConflict, "submission already graded")
	case errors.Is(err, service.ErrInvalidScore):
		return utils.SendError(c, fiber.StatusBadRequest, "awarded points exceed item maximum")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
