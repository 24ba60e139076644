package middleware

import (
	"Community_Portal/internal/model"
	"Community_Portal/internal/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidID = pkg.BadRequest("Invalid ID format")

// ValidateID 在查库前检查路径参数是否为 24 位十六进制
func ValidateID(params ...string) gin.HandlerFunc {
	if len(params) == 0 {
		params = []string{"id"}
	}
	return func(c *gin.Context) {
		for _, p := range params {
			if !model.IsValidID(c.Param(p)) {
				abortWithError(c, errInvalidID)
				return
			}
		}
		c.Next()
	}
}
