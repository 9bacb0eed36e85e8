package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/restobook/restobook/internal/core/domain"
)

// RegisterCustomValidators wires project-specific validators into gin's
// binding engine. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("paymentmethod", validPaymentMethod)
}

func validPaymentMethod(fl validator.FieldLevel) bool {
	switch domain.PaymentMethod(fl.Field().String()) {
	case domain.PayCash, domain.PayCard, domain.PayIBAN:
		return true
	}
	return false
}
