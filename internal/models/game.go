package models

import "time"

// Game is a mini-game in the catalogue, tagged with the soft skill it trains.
// Deleting a game cascades to its scores.
type Game struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"size:255;not null" json:"name"`
	URL       string      `gorm:"size:512" json:"url"`
	Skill     string      `gorm:"size:128;not null" json:"skill"`
	Scores    []GameScore `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time   `json:"created_at"`
}

// GameScore is a single recorded play result. Scores are additive and never
// graded; they feed the soft-skill averages directly.
type GameScore struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	GameID      uint      `gorm:"index;not null" json:"game_id"`
	Score       int       `gorm:"not null" json:"score"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}
