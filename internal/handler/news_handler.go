package handler

import (
	"strconv"

	"Community_Portal/internal/model"
	"Community_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	*CRUDHandler[model.News]
	svc *service.NewsService
}

func NewNewsHandler(svc *service.NewsService) *NewsHandler {
	return &NewsHandler{CRUDHandler: newCRUDHandler[model.News](svc), svc: svc}
}

// List 分页，page/limit 非法时回落到默认值
func (h *NewsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	result, err := h.svc.List(c.Request.Context(), service.NewsFilter{
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	respondList(c, result, err)
}
