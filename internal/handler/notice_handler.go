package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/service"
	"github.com/ecolearners/platform-api/internal/utils"
)

// NoticeHandler manages the single-message notice board.
type NoticeHandler struct {
	service service.NoticeService
	logger  zerolog.Logger
}

// NewNoticeHandler builds a notice handler instance.
func NewNoticeHandler(service service.NoticeService, logger zerolog.Logger) *NoticeHandler {
	return &NoticeHandler{
		service: service,
		logger:  logger.With().Str("component", "notice_handler").Logger(),
	}
}

// RegisterPublic attaches the unauthenticated read route.
func (h *NoticeHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.latest)
}

// Register attaches the authenticated routes to the provided router group.
func (h *NoticeHandler) Register(router fiber.Router) {
	router.Post("", h.post)
}

func (h *NoticeHandler) latest(c *fiber.Ctx) error {
	notice, err := h.service.Latest(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "notice retrieved", notice)
}

func (h *NoticeHandler) post(c *fiber.Ctx) error {
	var payload dto.NoticeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	notice, err := h.service.Post(c.Context(), principalFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "notice posted", notice)
}

func (h *NoticeHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "forbidden")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
