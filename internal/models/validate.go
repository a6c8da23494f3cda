// Package models holds the records persisted by the local record store and
// the values exchanged with the presentation layer. Every persisted record
// implements Validate, which is applied at the storage boundary.
package models

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/ecovate/internal/cryptox"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("argon2id", func(fl validator.FieldLevel) bool {
		return cryptox.CheckEncoded(fl.Field().String()) == nil
	})
	return v
}

// decimalValue lets numeric tags such as gte=0 apply to decimal.Decimal.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// ValidateEmail reports whether s is a syntactically valid email address.
func ValidateEmail(s string) error {
	return validate.Var(s, "required,email")
}
