package event

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedService FeedService
}

func NewFeedHandler(feedService FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// GetFeed godoc
// @Summary Load the composed event feed
// @Description Popular-with-friends events first, then personalized recommendations, deduplicated
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FeedResponse "Composed feed"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, h.feedService.LoadInitial(c.Request.Context(), userID))
}

// GetMoreFeed godoc
// @Summary Load the next page of recommended events
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param offset query int true "Recommendation source cursor from the previous page"
// @Success 200 {object} FeedPageResponse "Next page"
// @Failure 400 {object} map[string]interface{} "Bad offset"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /feed/more [get]
func (h *FeedHandler) GetMoreFeed(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}

	page, err := h.feedService.LoadMore(c.Request.Context(), userID, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// Register routes
func (h *FeedHandler) RegisterRoutes(r *gin.RouterGroup) {
	feed := r.Group("/feed")
	{
		feed.GET("", h.GetFeed)
		feed.GET("/more", h.GetMoreFeed)
	}
}
