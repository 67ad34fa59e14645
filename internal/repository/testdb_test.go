package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/models"
)

// setupTestDB opens a per-test in-memory database with the full schema.
// TranslateError matches the production connection so unique-index violations
// come back as gorm.ErrDuplicatedKey here too.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.UserProfile{},
		&models.Lesson{}, &models.Quiz{}, &models.Question{},
		&models.QuizSubmission{}, &models.Answer{},
		&models.AssignedTask{}, &models.TaskSubmission{},
		&models.Game{}, &models.GameScore{},
		&models.Notice{},
	))

	return db
}

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}
