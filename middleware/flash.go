package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// SetFlash stores a one-shot notice for the next page load, mirroring the
// category/message pairs browsers got from the server-rendered app.
func SetFlash(c *gin.Context, category, message string) {
	value := url.QueryEscape(category + "|" + message)
	c.SetCookie(flashCookie, value, 60, "/", "", false, true)
}

// PopFlash returns and clears the pending notice, if any.
func PopFlash(c *gin.Context) (category, message string, ok bool) {
	raw, err := c.Cookie(flashCookie)
	if err != nil {
		return "", "", false
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", "", false
	}
	parts := strings.SplitN(decoded, "|", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
