package services

import (
	"math"
	"strings"

	"quizdeck/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultService struct {
	db *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{db: db}
}

// LeaderboardSize caps how many rows the leaderboard shows.
const LeaderboardSize = 10

// SubmitAnswers scores a submission against the quiz's stored correct
// options and upserts the user's result for that quiz. Answers map question
// id to the selected letter; missing or wrong letters count zero, compared
// case-insensitively. Returns the raw score and the question count.
//
// A quiz without questions scores 0/0 and writes nothing.
func (s *ResultService) SubmitAnswers(userID, quizID uint, answers map[uint]string) (int, int, error) {
	var questions []models.Question
	err := s.db.Where("quiz_id = ?", quizID).Find(&questions).Error
	if err != nil {
		return 0, 0, err
	}
	if len(questions) == 0 {
		// Distinguish a missing quiz from an empty one.
		var count int64
		if err := s.db.Model(&models.Quiz{}).Where("id = ?", quizID).Count(&count).Error; err != nil {
			return 0, 0, err
		}
		if count == 0 {
			return 0, 0, ErrNotFound
		}
		return 0, 0, nil
	}

	score := 0
	for _, question := range questions {
		if selected, ok := answers[question.ID]; ok {
			if strings.ToLower(selected) == question.CorrectOption {
				score++
			}
		}
	}
	percent := math.Round(float64(score)/float64(len(questions))*100*100) / 100

	result := models.QuizResult{
		UserID:  userID,
		QuizID:  quizID,
		Score:   score,
		Percent: percent,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "quiz_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "percent", "updated_at"}),
	}).Create(&result).Error
	if err != nil {
		return 0, 0, err
	}

	return score, len(questions), nil
}

// Leaderboard returns up to limit results ordered by percent descending,
// most recently updated first among ties.
func (s *ResultService) Leaderboard(limit int) ([]models.QuizResult, error) {
	if limit <= 0 || limit > LeaderboardSize {
		limit = LeaderboardSize
	}

	var results []models.QuizResult
	err := s.db.
		Preload("User").
		Preload("Quiz").
		Order("percent DESC").
		Order("updated_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}
