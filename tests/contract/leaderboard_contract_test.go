package contract_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/handler"
)

func TestLeaderboardContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "leaderboard.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	board := []dto.UserResponse{
		{ID: 3, Email: "first@example.com", Name: "First", Role: "student", Points: 120},
		{ID: 9, Email: "second@example.com", Name: "Second", Role: "student", Points: 95},
	}

	reportHandler := handler.NewReportHandler(stubReportService{}, stubLeaderboardService{board: board}, zerolog.Nop())

	app := fiber.New()
	reportHandler.RegisterLeaderboard(app.Group("/api/v1/leaderboard"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
