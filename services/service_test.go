package services

import (
	"fmt"
	"testing"

	"quizdeck/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database. The named shared
// cache keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.QuizResult{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := models.User{
		Name:     username,
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createQuizWithQuestions(t *testing.T, db *gorm.DB, title string, correct ...string) *models.Quiz {
	t.Helper()

	quiz := models.Quiz{Title: title, Description: "test quiz"}
	require.NoError(t, db.Create(&quiz).Error)

	for i, letter := range correct {
		question := models.Question{
			QuizID:        quiz.ID,
			Text:          fmt.Sprintf("question %d", i+1),
			OptionA:       "A",
			OptionB:       "B",
			OptionC:       "C",
			OptionD:       "D",
			CorrectOption: letter,
		}
		require.NoError(t, db.Create(&question).Error)
		quiz.Questions = append(quiz.Questions, question)
	}
	return &quiz
}
