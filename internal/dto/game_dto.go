package dto

import "github.com/ecolearners/platform-api/internal/models"

// GameCreateRequest carries the fields for a new catalogue entry.
type GameCreateRequest struct {
	Name  string `json:"name" form:"name" validate:"required,min=1,max=255"`
	URL   string `json:"url" form:"url" validate:"required,url"`
	Skill string `json:"skill" form:"skill" validate:"required,min=1,max=128"`
}

// GameResponse is the public catalogue view.
type GameResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Skill string `json:"skill"`
}

// GameScoreRequest records a play result for the calling student.
type GameScoreRequest struct {
	GameID uint `json:"game_id" validate:"required,gt=0"`
	Score  int  `json:"score" validate:"gte=0"`
}

// NewGameResponse converts a Game model.
func NewGameResponse(model models.Game) GameResponse {
	return GameResponse{
		ID:    model.ID,
		Name:  model.Name,
		URL:   model.URL,
		Skill: model.Skill,
	}
}

// NewGameResponseSlice converts a slice of games.
func NewGameResponseSlice(games []models.Game) []GameResponse {
	responses := make([]GameResponse, 0, len(games))
	for _, game := range games {
		responses = append(responses, NewGameResponse(game))
	}
	return responses
}
