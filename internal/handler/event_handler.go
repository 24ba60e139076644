package handler

import (
	"strconv"

	"Community_Portal/internal/model"
	"Community_Portal/internal/pkg"
	"Community_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	*CRUDHandler[model.Event]
	svc *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{CRUDHandler: newCRUDHandler[model.Event](svc), svc: svc}
}

func (h *EventHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), service.EventFilter{
		Type:     c.Query("type"),
		Upcoming: c.Query("upcoming") == "true",
	})
	respondList(c, list, err)
}

// History 过去的活动，limit 取值 1-100
func (h *EventHandler) History(c *gin.Context) {
	limit := service.DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			_ = c.Error(pkg.BadRequest("Limit must be between 1 and 100"))
			return
		}
		limit = n
	}
	list, err := h.svc.History(c.Request.Context(), limit)
	respondList(c, list, err)
}

func (h *EventHandler) ByDate(c *gin.Context) {
	list, err := h.svc.ByDate(c.Request.Context(), c.Param("date"))
	respondList(c, list, err)
}
