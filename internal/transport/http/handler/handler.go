package handler

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	resp "estate-api/internal/transport/http/response"
)

var phoneRe = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)

// RegisterValidations 挂到 gin 默认 binding 引擎上，router 初始化时调一次
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(fl.Field().String())
		})
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		resp.FailValidation(c, fieldErrors(err))
		return false
	}
	return true
}

// fieldErrors 翻译成 {field, message} 数组，前端表单按字段消费
func fieldErrors(err error) []gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []gin.H{{"message": "Invalid request body"}}
	}
	out := make([]gin.H, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, gin.H{"field": fe.Field(), "message": fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Must be at least " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param()
	case "email":
		return "Please provide a valid email address"
	case "phone":
		return "Please provide a valid phone number"
	case "oneof":
		return "Invalid value. Allowed: " + fe.Param()
	default:
		return "Invalid value"
	}
}
