package handlers

import (
	"net/http"

	"quizdeck/middleware"
	"quizdeck/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	authService *services.AuthService
}

func NewProfileHandler(authService *services.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

func (h *ProfileHandler) Edit(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	payload := gin.H{"user": user}
	if category, message, ok := middleware.PopFlash(c); ok {
		payload["flash"] = gin.H{"category": category, "message": message}
	}
	c.JSON(http.StatusOK, payload)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	var req services.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.authService.UpdateProfile(user, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	switch status {
	case services.ProfileUpdated:
		middleware.SetFlash(c, "success", "Changes saved!")
	case services.ProfileUsedUsername:
		middleware.SetFlash(c, "danger", "Username already exists.")
	case services.ProfileUsedEmail:
		middleware.SetFlash(c, "danger", "Email already exists.")
	}
	c.Redirect(http.StatusFound, "/profile/edit")
}
