package handlers

import (
	"fmt"
	"net/http"

	"quizdeck/middleware"
	"quizdeck/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler covers quiz and question authoring. Routes using it sit
// behind the admin role gate.
type AdminHandler struct {
	quizService *services.QuizService
}

func NewAdminHandler(quizService *services.QuizService) *AdminHandler {
	return &AdminHandler{quizService: quizService}
}

func (h *AdminHandler) ShowQuizForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "admin_quiz"})
}

// CreateQuiz inserts a quiz and sends the author on to add its questions.
func (h *AdminHandler) CreateQuiz(c *gin.Context) {
	var req services.CreateQuizRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	logrus.WithField("quiz_id", quiz.ID).Info("quiz created")
	middleware.SetFlash(c, "success", "New quiz added successfully!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/admin/quiz/%d/question", quiz.ID))
}

func (h *AdminHandler) ShowQuestionForm(c *gin.Context) {
	quizID, ok := parseID(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetQuiz(quizID)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	payload := gin.H{"quiz": quiz}
	if category, message, ok := middleware.PopFlash(c); ok {
		payload["flash"] = gin.H{"category": category, "message": message}
	}
	c.JSON(http.StatusOK, payload)
}

func (h *AdminHandler) AddQuestion(c *gin.Context) {
	quizID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.AddQuestionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.quizService.AddQuestion(quizID, &req)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	logrus.WithFields(logrus.Fields{"quiz_id": quizID, "question_id": question.ID}).Info("question added")
	middleware.SetFlash(c, "success", "Question added. Add another?")
	c.Redirect(http.StatusFound, fmt.Sprintf("/admin/quiz/%d/question", quizID))
}
