package routes

import (
	"net/http"

	"quizdeck/handlers"
	"quizdeck/middleware"
	"quizdeck/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	adminHandler *handlers.AdminHandler,
	dashboardHandler *handlers.DashboardHandler,
	profileHandler *handlers.ProfileHandler,
	apiHandler *handlers.APIHandler,
	hub *services.Hub,
) {
	router.GET("/", func(c *gin.Context) {
		payload := gin.H{"page": "home"}
		if category, message, ok := middleware.PopFlash(c); ok {
			payload["flash"] = gin.H{"category": category, "message": message}
		}
		c.JSON(http.StatusOK, payload)
	})

	auth := router.Group("/auth")
	{
		auth.GET("/login", authHandler.ShowLogin)
		auth.POST("/login", authHandler.Login)
		auth.GET("/register", authHandler.ShowRegister)
		auth.POST("/register", authHandler.Register)
		auth.GET("/logout", authHandler.Logout)
	}

	quizzes := router.Group("/quizzes")
	{
		quizzes.GET("", quizHandler.ListQuizzes)
		quizzes.GET("/:id", middleware.RequireAuth(), quizHandler.GetQuiz)
		quizzes.POST("/:id", middleware.RequireAuth(), quizHandler.SubmitQuiz)
	}

	dashboard := router.Group("/dashboard")
	dashboard.Use(middleware.RequireAuth())
	{
		dashboard.GET("", dashboardHandler.Main)
		dashboard.GET("/new", dashboardHandler.NewQuizzes)
		dashboard.GET("/old", dashboardHandler.OldQuizzes)
		dashboard.GET("/leaderboard", dashboardHandler.Leaderboard)
	}

	profile := router.Group("/profile")
	profile.Use(middleware.RequireAuth())
	{
		profile.GET("/edit", profileHandler.Edit)
		profile.POST("/edit", profileHandler.Update)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.GET("/quiz", adminHandler.ShowQuizForm)
		admin.POST("/quiz", adminHandler.CreateQuiz)
		admin.GET("/quiz/:id/question", adminHandler.ShowQuestionForm)
		admin.POST("/quiz/:id/question", adminHandler.AddQuestion)
	}

	api := router.Group("/api")
	{
		api.GET("/quizzes", apiHandler.ListQuizzes)
		api.GET("/quiz/:id", apiHandler.GetQuiz)
		api.GET("/question/:id", apiHandler.GetQuestion)
	}

	// Live leaderboard stream; pushes a fresh snapshot after every scored
	// submission.
	router.GET("/ws/leaderboard", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logrus.WithError(err).Error("websocket upgrade failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}
		hub.RegisterClient(conn)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
