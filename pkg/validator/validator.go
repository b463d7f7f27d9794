package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/earcherc/realfoodfinder/pkg/e"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	RegisterCustomValidations(validate)
}

// ValidateStruct runs the struct tags of s and reports the first failing
// field as an *e.ValidationError.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return e.NewValidationError(baseField(fe.Field()), message(fe))
	}
	return e.Wrap("validator.ValidateStruct", err)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// baseField strips a dive index: "foods[3]" -> "foods".
func baseField(field string) string {
	if i := strings.IndexByte(field, '['); i > 0 {
		return field[:i]
	}
	return field
}

var overrides = map[string]string{
	"foods.min":    "Add at least one food item.",
	"products.min": "Select at least one product type.",
	"id.gt":        "Invalid id.",
	"address.min":  "Address is too short to locate. Please add more detail.",
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	if msg, ok := overrides[field+"."+fe.Tag()]; ok {
		return msg
	}

	list := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "min":
		if list {
			return fmt.Sprintf("%s must have at least %s entries.", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters.", field, fe.Param())
	case "max":
		if list {
			return fmt.Sprintf("%s can have at most %s entries.", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters.", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", field)
	case "absurl":
		return fmt.Sprintf("%s must be a valid absolute URL.", field)
	case "location_type":
		return fmt.Sprintf("%s must be one of: farm, home, store, dropoff, other.", field)
	case "status":
		return "Invalid status."
	case "link_product", "tag_option":
		return fmt.Sprintf("%q is not an allowed %s option.", fe.Value(), baseField(field))
	case "lat":
		return "latitude must be between -90 and 90."
	case "lng":
		return "longitude must be between -180 and 180."
	case "finite":
		return fmt.Sprintf("%s must be a finite number.", field)
	case "gt":
		return fmt.Sprintf("%s must be a positive integer.", field)
	}
	return fmt.Sprintf("%s is invalid.", field)
}
