package dto

import (
	"time"

	"github.com/ecolearners/platform-api/internal/models"
)

// NoticeCreateRequest replaces the current board message.
type NoticeCreateRequest struct {
	Message string `json:"message" form:"message" validate:"required,min=1"`
}

// NoticeResponse is the board view.
type NoticeResponse struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNoticeResponse converts a Notice model.
func NewNoticeResponse(model models.Notice) NoticeResponse {
	return NoticeResponse{
		Message:   model.Message,
		CreatedAt: model.CreatedAt,
	}
}
