package handler

import (
	"Community_Portal/internal/model"
	"Community_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type HOAHandler struct {
	*CRUDHandler[model.HOAMember]
	svc *service.HOAService
}

func NewHOAHandler(svc *service.HOAService) *HOAHandler {
	return &HOAHandler{CRUDHandler: newCRUDHandler[model.HOAMember](svc), svc: svc}
}

func (h *HOAHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	respondList(c, list, err)
}

type LinkHandler struct {
	*CRUDHandler[model.Link]
	svc *service.LinkService
}

func NewLinkHandler(svc *service.LinkService) *LinkHandler {
	return &LinkHandler{CRUDHandler: newCRUDHandler[model.Link](svc), svc: svc}
}

func (h *LinkHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	respondList(c, list, err)
}

type IssueHandler struct {
	*CRUDHandler[model.Issue]
	svc *service.IssueService
}

func NewIssueHandler(svc *service.IssueService) *IssueHandler {
	return &IssueHandler{CRUDHandler: newCRUDHandler[model.Issue](svc), svc: svc}
}

func (h *IssueHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	respondList(c, list, err)
}
