package friendship

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FriendshipHandler struct {
	friendshipService FriendshipService
}

func NewFriendshipHandler(friendshipService FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

// GetFriends godoc
// @Summary List the current user's accepted friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Friends with profiles"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /friends [get]
func (h *FriendshipHandler) GetFriends(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	friends, err := h.friendshipService.ListFriends(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// GetPendingRequests godoc
// @Summary List incoming pending friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Pending requests with requester profiles"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /friends/requests [get]
func (h *FriendshipHandler) GetPendingRequests(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	requests, err := h.friendshipService.ListPendingReceived(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// SearchUsers godoc
// @Summary Search profiles by username or name
// @Description Case-insensitive substring match, self excluded, capped at 20, annotated with friendship status
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Success 200 {object} map[string]interface{} "Annotated search results"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /friends/search [get]
func (h *FriendshipHandler) SearchUsers(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	results, err := h.friendshipService.Search(c.Request.Context(), c.Query("q"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// SendFriendRequest godoc
// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendFriendRequest true "Target user"
// @Success 200 {object} map[string]string "Request sent"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 409 {object} map[string]interface{} "Already friends or request exists"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /friends/requests [post]
func (h *FriendshipHandler) SendFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SendFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if err := h.friendshipService.SendRequest(c.Request.Context(), userID, req.TargetID); err != nil {
		switch {
		case errors.Is(err, ErrCannotFriendSelf):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadyFriends), errors.Is(err, ErrRequestExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "friend request sent"})
}

// AcceptFriendRequest godoc
// @Summary Accept a pending friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path string true "Requester user ID"
// @Success 200 {object} map[string]string "Request accepted"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "No pending request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /friends/requests/{id}/accept [post]
func (h *FriendshipHandler) AcceptFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.friendshipService.AcceptRequest(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "friend request accepted"})
}

// RemoveFriend godoc
// @Summary Remove a friend
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path string true "Friend user ID"
// @Success 200 {object} map[string]string "Friend removed"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Not friends"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /friends/{id} [delete]
func (h *FriendshipHandler) RemoveFriend(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.friendshipService.RemoveFriend(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFriends) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "friend removed"})
}

// CreateInvite godoc
// @Summary Generate a single-use invite link
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} InviteResponse "Invite code and URL"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /invites [post]
func (h *FriendshipHandler) CreateInvite(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	inv, err := h.friendshipService.CreateInvite(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate invite code"})
		return
	}

	c.JSON(http.StatusOK, inv)
}

// Register routes
func (h *FriendshipHandler) RegisterRoutes(r *gin.RouterGroup) {
	friends := r.Group("/friends")
	{
		friends.GET("", h.GetFriends)
		friends.GET("/requests", h.GetPendingRequests)
		friends.GET("/search", h.SearchUsers)
		friends.POST("/requests", h.SendFriendRequest)
		friends.POST("/requests/:id/accept", h.AcceptFriendRequest)
		friends.DELETE("/:id", h.RemoveFriend)
	}
	r.POST("/invites", h.CreateInvite)
}
