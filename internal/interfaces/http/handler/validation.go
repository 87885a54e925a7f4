package handler

import (
	"github.com/contable/backoffice/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs custom binding validators. "rut" checks the
// mod-11 check digit of a Chilean tax identifier.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("rut", func(fl validator.FieldLevel) bool {
		return valueobject.ValidateRUT(fl.Field().String())
	})
}
