package handler

import (
	"Community_Portal/internal/model"
	"Community_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type FAQHandler struct {
	*CRUDHandler[model.FAQ]
	svc *service.FAQService
}

func NewFAQHandler(svc *service.FAQService) *FAQHandler {
	return &FAQHandler{CRUDHandler: newCRUDHandler[model.FAQ](svc), svc: svc}
}

func (h *FAQHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), service.FAQFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	respondList(c, list, err)
}
