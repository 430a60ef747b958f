package handlers

import (
	"net/http"
	"strings"

	"quizdeck/middleware"
	"quizdeck/services"
	"quizdeck/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if h.redirectIfAuthenticated(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "login"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	if h.redirectIfAuthenticated(c) {
		return
	}

	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.SetFlash(c, "danger", "Invalid username or password.")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	user, err := h.authService.Login(&req)
	if err == services.ErrInvalidCredentials {
		middleware.SetFlash(c, "danger", "Invalid username or password.")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	logrus.WithField("user_id", user.ID).Info("user logged in")
	middleware.SetFlash(c, "success", "Logged in successfully!")
	c.Redirect(http.StatusFound, nextPage(c))
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if h.redirectIfAuthenticated(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "register"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	if h.redirectIfAuthenticated(c) {
		return
	}

	var req services.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(&req)
	if err == services.ErrConflict {
		middleware.SetFlash(c, "danger", "The username or email is already in use.")
		c.Redirect(http.StatusFound, "/auth/register")
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	// A fresh registration logs the user straight in.
	if err := h.establishSession(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	logrus.WithField("user_id", user.ID).Info("user registered")
	middleware.SetFlash(c, "success", "Registration successful.")
	c.Redirect(http.StatusFound, nextPage(c))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(session.CookieName)
	if err != nil {
		middleware.SetFlash(c, "info", "You are not logged in.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := h.sessions.Revoke(c.Request.Context(), token); err == session.ErrNoSession {
		middleware.SetFlash(c, "info", "You are not logged in.")
		c.Redirect(http.StatusFound, "/")
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	middleware.SetFlash(c, "success", "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) establishSession(c *gin.Context, userID uint) error {
	token, err := h.sessions.Issue(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	c.SetCookie(session.CookieName, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	return nil
}

func (h *AuthHandler) redirectIfAuthenticated(c *gin.Context) bool {
	if _, ok := middleware.UserFrom(c); ok {
		middleware.SetFlash(c, "info", "You are already logged in.")
		c.Redirect(http.StatusFound, "/dashboard")
		return true
	}
	return false
}

// nextPage picks the post-login destination: the next query parameter unless
// it points back into the auth pages.
func nextPage(c *gin.Context) string {
	next := c.Query("next")
	if next == "" || strings.HasPrefix(next, "/auth") || !strings.HasPrefix(next, "/") {
		return "/dashboard"
	}
	return next
}
