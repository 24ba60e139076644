package pkg

import "github.com/gin-gonic/gin"

type SuccessBody struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type ErrorBody struct {
	Status  bool         `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, SuccessBody{Status: true, Message: message, Data: data})
}

func Fail(c *gin.Context, status int, message string, errs []FieldError) {
	c.AbortWithStatusJSON(status, ErrorBody{Status: false, Message: message, Errors: errs})
}
