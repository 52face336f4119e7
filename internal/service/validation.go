package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/Mykola-art/shopsTestTask/internal/availability"
)

// NewValidator returns a validator that also understands the scheduling tags:
//
//	iana_zone  a zone name resolvable by zones
//	hhmm       a wall clock between 00:00 and 23:59
//	hhmm_end   like hhmm but also accepts 24:00
//	weekday    a weekday name or abbreviation
func NewValidator(zones availability.ZoneDB) *validator.Validate {
	v := validator.New()
	RegisterScheduleValidations(v, zones)
	return v
}

// RegisterScheduleValidations adds the scheduling tags to an existing validator.
func RegisterScheduleValidations(v *validator.Validate, zones availability.ZoneDB) {
	_ = v.RegisterValidation("iana_zone", func(fl validator.FieldLevel) bool {
		return availability.ValidTimezone(zones, fl.Field().String())
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := availability.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("hhmm_end", func(fl validator.FieldLevel) bool {
		_, err := availability.ParseBoundary(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, err := availability.ParseWeekday(fl.Field().String())
		return err == nil
	})
}
