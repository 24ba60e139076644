package handler

import (
	"Community_Portal/internal/model"
	"Community_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type SchoolHandler struct {
	*CRUDHandler[model.School]
	svc *service.SchoolService
}

func NewSchoolHandler(svc *service.SchoolService) *SchoolHandler {
	return &SchoolHandler{CRUDHandler: newCRUDHandler[model.School](svc), svc: svc}
}

// List 支持 type、district 过滤
func (h *SchoolHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), service.SchoolFilter{
		Type:     c.Query("type"),
		District: c.Query("district"),
	})
	respondList(c, list, err)
}
