package handlers

import (
	"net/http"
	"strconv"

	"quizdeck/services"

	"github.com/gin-gonic/gin"
)

// APIHandler serves the public read-only JSON API.
type APIHandler struct {
	quizService *services.QuizService
}

func NewAPIHandler(quizService *services.QuizService) *APIHandler {
	return &APIHandler{quizService: quizService}
}

func (h *APIHandler) GetQuiz(c *gin.Context) {
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

	c.JSON(http.StatusOK, quiz)
}

func (h *APIHandler) GetQuestion(c *gin.Context) {
	questionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	question, err := h.quizService.GetQuestion(questionID)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, question)
}

// ListQuizzes returns every quiz, or one page of them when both page and
// per_page are given as positive integers.
func (h *APIHandler) ListQuizzes(c *gin.Context) {
	page, pageOK := positiveQueryInt(c, "page")
	perPage, perPageOK := positiveQueryInt(c, "per_page")

	if pageOK && perPageOK {
		result, err := h.quizService.ListQuizzesPage(page, perPage)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"quizzes":      result.Quizzes,
			"total":        result.Total,
			"pages":        result.Pages,
			"current_page": result.CurrentPage,
		})
		return
	}

	quizzes, err := h.quizService.ListQuizzes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quizzes": quizzes,
		"total":   len(quizzes),
	})
}

func positiveQueryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, false
	}
	return value, true
}
