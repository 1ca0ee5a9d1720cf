package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FriendCounter reports how many accepted friends a user has. Implemented
// by the friendship service.
type FriendCounter interface {
	CountFriends(ctx context.Context, userID string) (int64, error)
}

type ProfileHandler struct {
	profileService ProfileService
	friendCounter  FriendCounter
}

func NewProfileHandler(profileService ProfileService, friendCounter FriendCounter) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, friendCounter: friendCounter}
}

// GetProfile godoc
// @Summary Get the current user's profile
// @Description Returns the profile plus the accepted-friend count. A user without a profile row gets an empty scaffold.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Profile with friend count"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	prof, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Friend count failures degrade to zero rather than failing the page.
	count, err := h.friendCounter.CountFriends(c.Request.Context(), userID)
	if err != nil {
		count = 0
	}

	c.JSON(http.StatusOK, gin.H{"profile": prof, "friendCount": count})
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Description Validates username/name/bio constraints, then upserts the profile row
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} ProfileResponse "Updated profile"
// @Failure 400 {object} map[string]interface{} "Validation failure, per-field messages"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 409 {object} map[string]interface{} "Username already taken"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prof, err := h.profileService.Update(c.Request.Context(), userID, &req)
	if err != nil {
		var verrs ValidationErrors
		switch {
		case errors.As(err, &verrs):
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verrs})
		case errors.Is(err, ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, prof)
}

// UploadAvatar godoc
// @Summary Upload a profile avatar image
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} ProfileResponse "Profile with new avatar URL"
// @Failure 400 {object} map[string]interface{} "Missing file"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	prof, err := h.profileService.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prof)
}

// Register routes
func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	prof := r.Group("/profile")
	{
		prof.GET("", h.GetProfile)
		prof.PUT("", h.UpdateProfile)
		prof.POST("/avatar", h.UploadAvatar)
	}
}
