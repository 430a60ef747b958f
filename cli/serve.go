package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizdeck/config"
	"quizdeck/handlers"
	"quizdeck/middleware"
	"quizdeck/models"
	"quizdeck/routes"
	"quizdeck/services"
	"quizdeck/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Sessions last a day unless the user logs out first.
const sessionTTL = 24 * time.Hour

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.QuizResult{},
	); err != nil {
		return err
	}

	redisClient := config.InitRedis(cfg)
	sessions := session.NewManager(redisClient, cfg.SessionSecret, sessionTTL)

	authService := services.NewAuthService(db)
	quizService := services.NewQuizService(db)
	resultService := services.NewResultService(db)

	hub := services.NewHub(resultService)
	go hub.Run()

	authHandler := handlers.NewAuthHandler(authService, sessions)
	quizHandler := handlers.NewQuizHandler(quizService, resultService, hub)
	adminHandler := handlers.NewAdminHandler(quizService)
	dashboardHandler := handlers.NewDashboardHandler(quizService, resultService)
	profileHandler := handlers.NewProfileHandler(authService)
	apiHandler := handlers.NewAPIHandler(quizService)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logrus.WithField("panic", recovered).Error("unhandled server fault")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}))
	router.Use(middleware.CORS())
	router.Use(middleware.CurrentUser(sessions, authService))

	routes.SetupRoutes(router, authHandler, quizHandler, adminHandler, dashboardHandler, profileHandler, apiHandler, hub)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logrus.Info("shutting down server")
	case <-ctx.Done():
		logrus.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
