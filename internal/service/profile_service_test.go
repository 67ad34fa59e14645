package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/models"
)

func newProfileFixture(t *testing.T) (*memoryUserRepo, ProfileService) {
	t.Helper()

	users := newMemoryUserRepo()
	svc := NewProfileService(users, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	return users, svc
}

func TestProfileGetWithoutProfileReturnsNameOnly(t *testing.T) {
	users, svc := newProfileFixture(t)
	user := models.User{Email: "student@example.com", Name: "Student"}
	require.NoError(t, users.Create(context.Background(), &user))

	profile, err := svc.Get(context.Background(), Principal{ID: user.ID})
	require.NoError(t, err)
	require.Equal(t, "Student", profile.Name)
	require.Nil(t, profile.DateOfBirth)
	require.Nil(t, profile.Age)
}

func TestProfileUpdateDerivesAge(t *testing.T) {
	users, svc := newProfileFixture(t)
	user := models.User{Email: "student@example.com", Name: "Old Name"}
	require.NoError(t, users.Create(context.Background(), &user))

	dob := "2014-05-20"
	updated, err := svc.Update(context.Background(), Principal{ID: user.ID}, dto.ProfileUpdateRequest{
		Name:        "New Name",
		DateOfBirth: &dob,
		Gender:      "female",
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Name)
	require.NotNil(t, updated.DateOfBirth)
	require.Equal(t, dob, *updated.DateOfBirth)
	require.NotNil(t, updated.Age)
	require.Positive(t, *updated.Age)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "New Name", stored.Name)
	require.NotNil(t, stored.Profile)
}

func TestProfileUpdateRejectsBadDate(t *testing.T) {
	users, svc := newProfileFixture(t)
	user := models.User{Email: "student@example.com"}
	require.NoError(t, users.Create(context.Background(), &user))

	bad := "20-05-2014"
	_, err := svc.Update(context.Background(), Principal{ID: user.ID}, dto.ProfileUpdateRequest{Name: "Name", DateOfBirth: &bad})
	require.Error(t, err)
}

func TestProfileMeUnknownUser(t *testing.T) {
	_, svc := newProfileFixture(t)

	_, err := svc.Me(context.Background(), Principal{ID: 42})
	require.ErrorIs(t, err, ErrUserNotFound)
}
