package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/MrsLondon/vivahub-api/internal/service/checkout"
)

// RegisterValidators installs the custom binding rules on gin's validator
// engine and makes validation errors report json field names.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// "timeslot" accepts the 12-hour form the booking form collects.
	_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		_, err := checkout.To24Hour(fl.Field().String())
		return err == nil
	})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
}
