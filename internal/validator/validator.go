package validator

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const minRegistrationAge = 18

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalToFloat, decimal.Decimal{})
	v.RegisterValidation("adult", validateAdult)
	v.RegisterValidation("dateonly", validateDateOnly)

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Age is the calendar-aware age in whole years at the given instant. It
// counts birthdays, not 365-day periods, so leap-year birthdays resolve the
// way a human would expect.
func Age(dob, at time.Time) int {
	years := at.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}

// ParseDate parses the YYYY-MM-DD wire format used for dob, travel dates and
// promo validity bounds.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// decimals validate through the numeric rules (gt, gte, ...) by presenting
// their float value to the validator
func decimalToFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateAdult(fl validator.FieldLevel) bool {
	dob, err := ParseDate(fl.Field().String())
	if err != nil {
		return false
	}
	return Age(dob, time.Now().UTC()) >= minRegistrationAge
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}
