package handler

import (
	"context"
	"io"
	"net/http"

	"Community_Portal/internal/pkg"

	"github.com/gin-gonic/gin"
)

type crudService[T any] interface {
	Create(ctx context.Context, body io.Reader) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, id string, body io.Reader) (*T, error)
	Delete(ctx context.Context, id string) error
	Label() string
}

// CRUDHandler 各资源共用的增删改查接口
type CRUDHandler[T any] struct {
	crud crudService[T]
}

func newCRUDHandler[T any](svc crudService[T]) *CRUDHandler[T] {
	return &CRUDHandler[T]{crud: svc}
}

func (h *CRUDHandler[T]) Create(c *gin.Context) {
	doc, err := h.crud.Create(c.Request.Context(), c.Request.Body)
	if err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusCreated, h.crud.Label()+" created successfully", doc)
}

func (h *CRUDHandler[T]) Get(c *gin.Context) {
	doc, err := h.crud.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusOK, "Success", doc)
}

func (h *CRUDHandler[T]) Update(c *gin.Context) {
	doc, err := h.crud.Update(c.Request.Context(), c.Param("id"), c.Request.Body)
	if err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusOK, h.crud.Label()+" updated successfully", doc)
}

func (h *CRUDHandler[T]) Delete(c *gin.Context) {
	if err := h.crud.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusOK, h.crud.Label()+" deleted successfully", nil)
}

func respondList(c *gin.Context, data any, err error) {
	if err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusOK, "Success", data)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := pkg.DecodeJSON(c.Request.Body, dst); err != nil {
		_ = c.Error(err)
		return false
	}
	return true
}
