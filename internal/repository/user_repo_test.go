package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/ecolearners/platform-api/internal/models"
)

func TestUserRepositoryTopStudentsOrdersAndLimits(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	teacher := models.User{Email: "teacher@example.com", Role: models.RoleTeacher, Points: 9999}
	require.NoError(t, repo.Create(context.Background(), &teacher))

	for i := 0; i < 12; i++ {
		student := models.User{
			Email:  fmt.Sprintf("student%d@example.com", i),
			Role:   models.RoleStudent,
			Points: i * 10,
		}
		require.NoError(t, repo.Create(context.Background(), &student))
	}

	top, err := repo.TopStudents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, top, 10)
	require.Equal(t, 110, top[0].Points)
	for _, user := range top {
		require.Equal(t, models.RoleStudent, user.Role, "teachers never appear on the leaderboard")
	}
	for i := 1; i < len(top); i++ {
		require.GreaterOrEqual(t, top[i-1].Points, top[i].Points)
	}
}

func TestUserRepositoryTopStudentsBreaksTiesByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	first := models.User{Email: "first@example.com", Role: models.RoleStudent, Points: 50}
	second := models.User{Email: "second@example.com", Role: models.RoleStudent, Points: 50}
	require.NoError(t, repo.Create(context.Background(), &first))
	require.NoError(t, repo.Create(context.Background(), &second))

	top, err := repo.TopStudents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, first.ID, top[0].ID)
	require.Equal(t, second.ID, top[1].ID)
}

func TestUserRepositorySaveProfileCreatesThenUpdates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := models.User{Email: "student@example.com", Name: "Old Name", Role: models.RoleStudent}
	require.NoError(t, repo.Create(context.Background(), &user))

	dob := datatypes.Date(mustParseDate(t, "2014-05-20"))
	user.Name = "New Name"
	profile := models.UserProfile{RegisterNumber: "R-100", DateOfBirth: &dob, Gender: "female"}
	require.NoError(t, repo.SaveProfile(context.Background(), &user, &profile))

	saved, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "New Name", saved.Name)
	require.NotNil(t, saved.Profile)
	require.Equal(t, "R-100", saved.Profile.RegisterNumber)

	profile.RegisterNumber = "R-200"
	require.NoError(t, repo.SaveProfile(context.Background(), &user, &profile))

	saved, err = repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "R-200", saved.Profile.RegisterNumber)

	var count int64
	require.NoError(t, db.Model(&models.UserProfile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.Equal(t, int64(1), count, "profile updates never create a second row")
}

func TestUserRepositoryListStudentsExcludesTeachers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(context.Background(), &models.User{Email: "s@example.com", Role: models.RoleStudent}))
	require.NoError(t, repo.Create(context.Background(), &models.User{Email: "t@example.com", Role: models.RoleTeacher}))

	students, err := repo.ListStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, "s@example.com", students[0].Email)
}
