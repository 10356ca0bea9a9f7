package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// RegisterCustomValidations installs domain-aware binding validations on gin's
// validator engine. Safe to call more than once.
func RegisterCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("mappingrole", func(fl validator.FieldLevel) bool {
		return domain.ValidRole(domain.MappingRole(fl.Field().String()))
	})
	_ = v.RegisterValidation("accountcategory", func(fl validator.FieldLevel) bool {
		return domain.ValidCategory(domain.AccountCategory(fl.Field().String()))
	})
}
