package validator

import (
	"math"
	"net/url"

	"github.com/earcherc/realfoodfinder/internal/domain"

	"github.com/go-playground/validator/v10"
)

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", validateLat)
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("finite", validateFinite)
	validate.RegisterValidation("absurl", validateAbsURL)
	validate.RegisterValidation("location_type", func(fl validator.FieldLevel) bool {
		return domain.IsLocationType(fl.Field().String())
	})
	validate.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return domain.IsStatus(fl.Field().String())
	})
	validate.RegisterValidation("link_product", func(fl validator.FieldLevel) bool {
		return domain.IsLinkProduct(fl.Field().String())
	})
	validate.RegisterValidation("tag_option", func(fl validator.FieldLevel) bool {
		return domain.IsTagOption(fl.Field().String())
	})
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180.0 && lng <= 180.0
}

func validateFinite(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validateAbsURL accepts http(s) URLs with a host.
func validateAbsURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
