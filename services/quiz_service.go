package services

import (
	"errors"
	"strings"

	"quizdeck/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
}

type AddQuestionRequest struct {
	Text          string `form:"question_text" json:"text" binding:"required"`
	OptionA       string `form:"option_a" json:"option_a" binding:"required"`
	OptionB       string `form:"option_b" json:"option_b" binding:"required"`
	OptionC       string `form:"option_c" json:"option_c" binding:"required"`
	OptionD       string `form:"option_d" json:"option_d" binding:"required"`
	CorrectOption string `form:"correct_option" json:"correct_option" binding:"required,oneof=a b c d A B C D"`
}

// QuizPage is a paginated quiz listing with the metadata the API exposes.
type QuizPage struct {
	Quizzes     []models.Quiz
	Total       int64
	Pages       int
	CurrentPage int
}

// TakenQuiz pairs a quiz the user already took with their stored score.
type TakenQuiz struct {
	Quiz  models.Quiz `json:"quiz"`
	Score int         `json:"score"`
}

func (s *QuizService) CreateQuiz(req *CreateQuizRequest) (*models.Quiz, error) {
	quiz := models.Quiz{
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// AddQuestion appends a question to an existing quiz. The correct option
// letter is stored lower-case.
func (s *QuizService) AddQuestion(quizID uint, req *AddQuestionRequest) (*models.Question, error) {
	if _, err := s.GetQuiz(quizID); err != nil {
		return nil, err
	}

	question := models.Question{
		QuizID:        quizID,
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: strings.ToLower(req.CorrectOption),
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuizService) GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Preload("Questions").First(&quiz, quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) GetQuestion(questionID uint) (*models.Question, error) {
	var question models.Question
	err := s.db.First(&question, questionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ListQuizzes returns every quiz with questions preloaded.
func (s *QuizService) ListQuizzes() ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Preload("Questions").Order("id").Find(&quizzes).Error
	return quizzes, err
}

// ListQuizzesPage returns one page of quizzes. Pages are 1-based; a page
// past the end yields an empty slice, not an error.
func (s *QuizService) ListQuizzesPage(page, perPage int) (*QuizPage, error) {
	var total int64
	if err := s.db.Model(&models.Quiz{}).Count(&total).Error; err != nil {
		return nil, err
	}

	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}

	var quizzes []models.Quiz
	err := s.db.Preload("Questions").
		Order("id").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}

	return &QuizPage{
		Quizzes:     quizzes,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
	}, nil
}

// NewQuizzesFor lists quizzes the user has not taken yet, newest first.
func (s *QuizService) NewQuizzesFor(userID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.
		Where("id NOT IN (?)", s.takenQuizIDs(userID)).
		Order("id DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// OldQuizzesFor lists quizzes the user already took, newest first, each
// paired with the score stored for that user.
func (s *QuizService) OldQuizzesFor(userID uint) ([]TakenQuiz, error) {
	var quizzes []models.Quiz
	err := s.db.
		Where("id IN (?)", s.takenQuizIDs(userID)).
		Order("id DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}

	var results []models.QuizResult
	if err := s.db.Where("user_id = ?", userID).Find(&results).Error; err != nil {
		return nil, err
	}
	scores := make(map[uint]int, len(results))
	for _, r := range results {
		scores[r.QuizID] = r.Score
	}

	taken := make([]TakenQuiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		taken = append(taken, TakenQuiz{Quiz: quiz, Score: scores[quiz.ID]})
	}
	return taken, nil
}

func (s *QuizService) takenQuizIDs(userID uint) *gorm.DB {
	return s.db.Model(&models.QuizResult{}).
		Select("quiz_id").
		Where("user_id = ?", userID)
}
