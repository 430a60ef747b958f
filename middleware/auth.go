package middleware

import (
	"net/http"

	"quizdeck/models"
	"quizdeck/services"
	"quizdeck/session"

	"github.com/gin-gonic/gin"
)

const userKey = "current_user"

// CurrentUser resolves the session cookie once per request and stores the
// authenticated user in the gin context. Requests without a valid session
// pass through unauthenticated.
func CurrentUser(sessions *session.Manager, users *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Next()
			return
		}

		userID, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.GetUserByID(userID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// UserFrom returns the authenticated user stored by CurrentUser.
func UserFrom(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// RequireAuth redirects unauthenticated requests to the registration page,
// remembering the original URL in the next parameter.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFrom(c); !ok {
			SetFlash(c, "info", "You must register in to access this page.")
			c.Redirect(http.StatusFound, "/auth/register?next="+c.Request.URL.Path)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects non-admin users with 403. It assumes RequireAuth ran
// first.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFrom(c)
		if !ok || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}
		c.Next()
	}
}
