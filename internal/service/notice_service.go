package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/models"
	"github.com/ecolearners/platform-api/internal/repository"
)

// NoticeService manages the single-message notice board.
type NoticeService interface {
	Latest(ctx context.Context) (dto.NoticeResponse, error)
	Post(ctx context.Context, principal Principal, payload dto.NoticeCreateRequest) (dto.NoticeResponse, error)
}

type noticeService struct {
	notices   repository.NoticeRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	events    EventPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewNoticeService constructs a NoticeService instance.
func NewNoticeService(notices repository.NoticeRepository, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) NoticeService {
	return &noticeService{
		notices:   notices,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		events:    events,
		logger:    logger.With().Str("component", "notice_service").Logger(),
		now:       time.Now,
	}
}

// Latest returns the current board message, or a placeholder when the board
// has never been written to.
func (s *noticeService) Latest(ctx context.Context) (dto.NoticeResponse, error) {
	notice, err := s.notices.Latest(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NoticeResponse{Message: "No notices yet.", CreatedAt: s.now()}, nil
		}
		return dto.NoticeResponse{}, err
	}

	return dto.NewNoticeResponse(notice), nil
}

// Post replaces the board with a sanitized message and broadcasts the change.
func (s *noticeService) Post(ctx context.Context, principal Principal, payload dto.NoticeCreateRequest) (dto.NoticeResponse, error) {
	if !principal.IsTeacher() {
		return dto.NoticeResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.NoticeResponse{}, err
	}

	message := strings.TrimSpace(s.sanitizer.Sanitize(payload.Message))
	notice := models.Notice{Message: message}

	if err := s.notices.Replace(ctx, &notice); err != nil {
		return dto.NoticeResponse{}, err
	}

	s.logger.Info().Uint("notice_id", notice.ID).Msg("notice posted")

	if s.events != nil {
		if data, err := json.Marshal(dto.NewNoticeResponse(notice)); err == nil {
			if err := s.events.Publish(SubjectNoticePosted, data); err != nil {
				s.logger.Warn().Err(err).Msg("failed to publish notice event")
			}
		}
	}

	return dto.NewNoticeResponse(notice), nil
}
