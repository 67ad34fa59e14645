package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ecolearners/platform-api/internal/service"
	"github.com/ecolearners/platform-api/internal/utils"
)

// ReportHandler serves the student roster, per-student reports and the
// points leaderboard.
type ReportHandler struct {
	reports     service.ReportService
	leaderboard service.LeaderboardService
	logger      zerolog.Logger
}

// NewReportHandler builds a report handler instance.
func NewReportHandler(reports service.ReportService, leaderboard service.LeaderboardService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		reports:     reports,
		leaderboard: leaderboard,
		logger:      logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches the authenticated report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/students", h.listStudents)
	router.Get("/students/:id", h.studentReport)
}

// RegisterLeaderboard attaches the public leaderboard route.
func (h *ReportHandler) RegisterLeaderboard(router fiber.Router) {
	router.Get("", h.top)
}

func (h *ReportHandler) listStudents(c *fiber.Ctx) error {
	students, err := h.reports.ListStudents(c.Context(), principalFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *ReportHandler) studentReport(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.reports.BuildReport(c.Context(), principalFromContext(c), studentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "report generated", report)
}

func (h *ReportHandler) top(c *fiber.Ctx) error {
	students, err := h.leaderboard.Top(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "leaderboard retrieved", students)
}

func (h *ReportHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
