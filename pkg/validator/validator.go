package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	v *validator.Validate
)

func init() {
	v = New()
}

// New returns a validator that reports fields by their json name and knows the notblank rule.
// Use it when a package needs to register its own struct level rules.
func New() *validator.Validate {
	nv := validator.New()
	nv.RegisterTagNameFunc(jsonTagName)

	// notblank only fails on registration of a duplicate alias, which cannot happen on a fresh instance
	_ = nv.RegisterValidation("notblank", validators.NotBlank)
	return nv
}

func Validate(i interface{}) error {
	if i == nil {
		return fmt.Errorf("data to validate is nil")
	}

	return v.Struct(i)
}

// Var validates single variable using tag.
func Var(field interface{}, tag string) error {
	return v.Var(field, tag)
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}

	return name
}
