package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"quizdeck/handlers"
	"quizdeck/middleware"
	"quizdeck/models"
	"quizdeck/routes"
	"quizdeck/services"
	"quizdeck/session"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	sessions := session.NewManager(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test-secret", time.Hour)

	authService := services.NewAuthService(db)
	quizService := services.NewQuizService(db)
	resultService := services.NewResultService(db)

	hub := services.NewHub(resultService)
	go hub.Run()

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.CurrentUser(sessions, authService))
	routes.SetupRoutes(router,
		handlers.NewAuthHandler(authService, sessions),
		handlers.NewQuizHandler(quizService, resultService, hub),
		handlers.NewAdminHandler(quizService),
		handlers.NewDashboardHandler(quizService, resultService),
		handlers.NewProfileHandler(authService),
		handlers.NewAPIHandler(quizService),
		hub,
	)

	return &testApp{router: router, db: db}
}

func (a *testApp) do(t *testing.T, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// seedUser inserts a user with a bcrypt-hashed password.
func (a *testApp) seedUser(t *testing.T, username, password, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:     username,
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, a.db.Create(&user).Error)
	return &user
}

func (a *testApp) seedQuiz(t *testing.T, title string, correct ...string) *models.Quiz {
	t.Helper()

	quiz := models.Quiz{Title: title, Description: "seeded"}
	require.NoError(t, a.db.Create(&quiz).Error)
	for i, letter := range correct {
		question := models.Question{
			QuizID:        quiz.ID,
			Text:          fmt.Sprintf("q%d", i+1),
			OptionA:       "A",
			OptionB:       "B",
			OptionC:       "C",
			OptionD:       "D",
			CorrectOption: letter,
		}
		require.NoError(t, a.db.Create(&question).Error)
		quiz.Questions = append(quiz.Questions, question)
	}
	return &quiz
}

// login posts the login form and returns the cookies a browser would keep.
func (a *testApp) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	w := a.do(t, http.MethodPost, "/auth/login", form, nil)
	require.Equal(t, http.StatusFound, w.Code, "login should redirect")

	var kept []*http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName {
			kept = append(kept, cookie)
		}
	}
	require.NotEmpty(t, kept, "login should set a session cookie")
	return kept
}
