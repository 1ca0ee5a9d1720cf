package rsvp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RSVPHandler struct {
	rsvpService RSVPService
}

func NewRSVPHandler(rsvpService RSVPService) *RSVPHandler {
	return &RSVPHandler{rsvpService: rsvpService}
}

// AcceptEvent godoc
// @Summary Mark an event as interested
// @Description Upserts an INTERESTED/PUBLIC RSVP for the current user
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string "RSVP saved"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /events/{id}/accept [post]
func (h *RSVPHandler) AcceptEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you must be logged in to save events"})
		return
	}

	if err := h.rsvpService.Accept(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event saved"})
}

// DismissEvent godoc
// @Summary Dismiss an event from the feed
// @Description Upserts a HIDDEN/PRIVATE RSVP for the current user
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string "Event dismissed"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /events/{id}/dismiss [post]
func (h *RSVPHandler) DismissEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you must be logged in to dismiss events"})
		return
	}

	if err := h.rsvpService.Dismiss(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to dismiss event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event dismissed"})
}

// GetRSVPStatus godoc
// @Summary Check whether the current user accepted an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]bool "Accepted flag"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /events/{id}/rsvp [get]
func (h *RSVPHandler) GetRSVPStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	accepted, err := h.rsvpService.CheckStatus(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accepted": accepted})
}

// GetMyEvents godoc
// @Summary List the current user's upcoming accepted events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Accepted events, ascending start time"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /me/events [get]
func (h *RSVPHandler) GetMyEvents(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	events, err := h.rsvpService.ListAccepted(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Register routes
func (h *RSVPHandler) RegisterRoutes(r *gin.RouterGroup) {
	// "mine" lives outside the /events group so it cannot collide with
	// the :id wildcard.
	r.GET("/me/events", h.GetMyEvents)

	events := r.Group("/events")
	{
		events.POST("/:id/accept", h.AcceptEvent)
		events.POST("/:id/dismiss", h.DismissEvent)
		events.GET("/:id/rsvp", h.GetRSVPStatus)
	}
}
