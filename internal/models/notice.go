package models

import "time"

// Notice is a board message. The board shows only the most recent notice;
// posting replaces everything before it.
type Notice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
