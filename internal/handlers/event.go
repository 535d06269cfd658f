package handlers

import (
	"net/http"

	"github.com/dil-bolahlautner/automatic-poll-generator/internal/services"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents godoc
// @Summary      List live estimation events
// @Description  Snapshot of every currently running event
// @Tags         events
// @Produce      json
// @Success      200 {array} Event
// @Security     BearerAuth
// @Router       /api/v1/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, h.eventService.List())
}

// GetEvent godoc
// @Summary      Get one estimation event
// @Description  Snapshot of a running event by id
// @Tags         events
// @Produce      json
// @Param        id path string true "Event ID"
// @Success      200 {object} Event
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	snap, ok := h.eventService.GetSnapshot(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
