package validators

import (
	"companion/cmd/internal/utils"
	"time"

	"github.com/go-playground/validator/v10"
)

// IsIsoDate accepts "YYYY-MM-DD" calendar dates.
func IsIsoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(utils.DateLayout, fl.Field().String())
	return err == nil
}

// IsHourMinute accepts 24-hour "HH:MM" times of day.
func IsHourMinute(fl validator.FieldLevel) bool {
	_, err := time.Parse(utils.TimeLayout, fl.Field().String())
	return err == nil
}

// Register installs the custom tags on validate.
func Register(validate *validator.Validate) {
	_ = validate.RegisterValidation("isodate", IsIsoDate)
	_ = validate.RegisterValidation("hhmm", IsHourMinute)
}
