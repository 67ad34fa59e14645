package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/service"
	"github.com/ecolearners/platform-api/internal/utils"
)

// GameHandler manages the mini-game catalogue and score submissions.
type GameHandler struct {
	service service.GameService
	logger  zerolog.Logger
}

// NewGameHandler builds a game handler instance.
func NewGameHandler(service service.GameService, logger zerolog.Logger) *GameHandler {
	return &GameHandler{
		service: service,
		logger:  logger.With().Str("component", "game_handler").Logger(),
	}
}

// RegisterPublic attaches the unauthenticated catalogue route.
func (h *GameHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
}

// Register attaches the authenticated routes to the provided router group.
func (h *GameHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Delete("/:id", h.delete)
	router.Post("/scores", h.submitScore)
}

func (h *GameHandler) list(c *fiber.Ctx) error {
	games, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "games retrieved", games)
}

func (h *GameHandler) create(c *fiber.Ctx) error {
	var payload dto.GameCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	game, err := h.service.Create(c.Context(), principalFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "game added", game)
}

func (h *GameHandler) delete(c *fiber.Ctx) error {
	gameID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), principalFromContext(c), gameID); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "game deleted", fiber.Map{"game_id": gameID})
}

func (h *GameHandler) submitScore(c *fiber.Ctx) error {
	var payload dto.GameScoreRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.SubmitScore(c.Context(), principalFromContext(c), payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "score recorded", nil)
}

func (h *GameHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrGameNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "game not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
