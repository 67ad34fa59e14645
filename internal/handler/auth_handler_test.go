package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/handler"
	"github.com/ecolearners/platform-api/internal/service"
)

type mockAuthService struct {
	lastRole string
	token    dto.TokenResponse
	err      error
}

func (m *mockAuthService) Login(_ context.Context, role string, _ dto.LoginRequest) (dto.TokenResponse, error) {
	m.lastRole = role
	if m.err != nil {
		return dto.TokenResponse{}, m.err
	}
	return m.token, nil
}

func newAuthApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))
	return app
}

func postLogin(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	svc := &mockAuthService{token: dto.TokenResponse{AccessToken: "signed-token", TokenType: "bearer"}}
	app := newAuthApp(svc)

	resp := postLogin(t, app, "/api/v1/auth/login/student", `{"email":"student@example.com","password":"hunter22"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "student", svc.lastRole)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.TokenResponse `json:"data"`
		Message string            `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "signed-token", body.Data.AccessToken)
	require.Equal(t, "bearer", body.Data.TokenType)
}

func TestAuthHandler_UnknownRole(t *testing.T) {
	app := newAuthApp(&mockAuthService{})

	resp := postLogin(t, app, "/api/v1/auth/login/admin", `{"email":"a@b.com","password":"hunter22"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_InvalidCredentials(t *testing.T) {
	app := newAuthApp(&mockAuthService{err: service.ErrInvalidCredentials})

	resp := postLogin(t, app, "/api/v1/auth/login/teacher", `{"email":"teacher@example.com","password":"wrong"}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
	require.Contains(t, body.Message, "teacher")
}

func TestAuthHandler_MalformedBody(t *testing.T) {
	app := newAuthApp(&mockAuthService{})

	resp := postLogin(t, app, "/api/v1/auth/login/student", `{"email":`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
