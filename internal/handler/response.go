package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/logger"
)

// Response 统一响应格式
type Response struct {
	Error   bool        `json:"error"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Error:   false,
		Message: message,
		Status:  statusCode,
		Data:    data,
	})
}

// ErrorResponse 错误响应, 按错误类别映射状态码
func ErrorResponse(c *gin.Context, err error) {
	appErr := apperr.From(err)
	if appErr.Kind == apperr.Internal {
		logger.Error("Internal error: %v", err)
	}
	c.JSON(appErr.HTTPStatus(), Response{
		Error:   true,
		Message: appErr.Message,
		Status:  appErr.HTTPStatus(),
		Data:    appErr.Data,
	})
}
