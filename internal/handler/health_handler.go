package handler

import (
	"context"
	"net/http"
	"time"

	"Community_Portal/internal/pkg"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	store string
	ping  func(ctx context.Context) error
}

func NewHealthHandler(store string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{store: store, ping: ping}
}

// Check 存储不可达时返回 503
func (h *HealthHandler) Check(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			pkg.Fail(c, http.StatusServiceUnavailable, "Store unavailable", nil)
			return
		}
	}
	pkg.Success(c, http.StatusOK, "OK", gin.H{"store": h.store, "time": time.Now().UTC()})
}
