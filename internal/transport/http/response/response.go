package response

import "github.com/gin-gonic/gin"

// Body 统一响应壳：{success, message?, data?, errors?}
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Body{Success: true, Message: message, Data: data})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Body{Success: false, Message: message})
}

// FailValidation 400 + 字段错误明细
func FailValidation(c *gin.Context, errs any) {
	c.JSON(400, Body{Success: false, Message: "Validation failed", Errors: errs})
}

// AbortFail 中间件专用
func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Body{Success: false, Message: message})
}
