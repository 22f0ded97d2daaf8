package util

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators 在 gin 的校验引擎上注册自定义规则
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("classcode", func(fl validator.FieldLevel) bool {
		return IsValidClassCode(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("coursecolor", func(fl validator.FieldLevel) bool {
		return IsValidColor(fl.Field().String())
	})
}
