package handlers

import (
	"net/http"

	"quizdeck/middleware"
	"quizdeck/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	quizService   *services.QuizService
	resultService *services.ResultService
}

func NewDashboardHandler(quizService *services.QuizService, resultService *services.ResultService) *DashboardHandler {
	return &DashboardHandler{
		quizService:   quizService,
		resultService: resultService,
	}
}

func (h *DashboardHandler) Main(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	payload := gin.H{"user": user}
	if category, message, ok := middleware.PopFlash(c); ok {
		payload["flash"] = gin.H{"category": category, "message": message}
	}
	c.JSON(http.StatusOK, payload)
}

// NewQuizzes lists the quizzes the user has not taken yet.
func (h *DashboardHandler) NewQuizzes(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	quizzes, err := h.quizService.NewQuizzesFor(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"new": quizzes})
}

// OldQuizzes lists already-taken quizzes with the user's score on each.
func (h *DashboardHandler) OldQuizzes(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	taken, err := h.quizService.OldQuizzesFor(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"old": taken})
}

func (h *DashboardHandler) Leaderboard(c *gin.Context) {
	scores, err := h.resultService.Leaderboard(services.LeaderboardSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": scores})
}
