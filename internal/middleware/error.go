package middleware

import (
	"errors"
	"io"
	"net/http"
	"runtime/debug"

	"Community_Portal/internal/logger"
	"Community_Portal/internal/pkg"
	"Community_Portal/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const internalMessage = "Something went wrong"

// ErrorHandler 统一把 c.Errors 转换为错误信封
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, message, fields := Translate(err)
		if status >= http.StatusInternalServerError {
			logger.Errorf("%s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, c.GetString(ContextRequestIDKey), err)
		}
		pkg.Fail(c, status, message, fields)
	}
}

// Translate 将错误映射为状态码、提示与字段错误，未知错误不暴露细节
func Translate(err error) (int, string, []pkg.FieldError) {
	var appErr *pkg.AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message, appErr.Errors
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return http.StatusConflict, "Resource already exists", nil
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "Resource not found", nil
	case errors.As(err, &verrs):
		return http.StatusBadRequest, "Validation failed", pkg.FieldErrors(verrs)
	default:
		return http.StatusInternalServerError, internalMessage, nil
	}
}

// Recovery panic 同样以 500 信封返回
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Errorf("panic on %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, recovered, debug.Stack())
		pkg.Fail(c, http.StatusInternalServerError, internalMessage, nil)
	})
}

func NoRoute(c *gin.Context) {
	pkg.Fail(c, http.StatusNotFound, "Route not found", nil)
}
