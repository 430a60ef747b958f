package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"quizdeck/middleware"
	"quizdeck/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService   *services.QuizService
	resultService *services.ResultService
	hub           *services.Hub
}

func NewQuizHandler(quizService *services.QuizService, resultService *services.ResultService, hub *services.Hub) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		resultService: resultService,
		hub:           hub,
	}
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
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

// SubmitQuiz scores the posted answers. The form maps question ids to the
// selected letter, matching the inputs the quiz page renders.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	quizID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}
	answers := make(map[uint]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		questionID, err := strconv.ParseUint(key, 10, 32)
		if err != nil || len(values) == 0 {
			continue
		}
		answers[uint(questionID)] = values[0]
	}

	score, total, err := h.resultService.SubmitAnswers(user.ID, quizID, answers)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	h.hub.BroadcastLeaderboard()

	middleware.SetFlash(c, "info", fmt.Sprintf("You scored %d/%d.", score, total))
	c.Redirect(http.StatusFound, "/dashboard")
}

// parseID reads a numeric path parameter; a non-numeric id is a 404, same
// as a missing record.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}
