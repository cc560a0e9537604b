package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Date string `validate:"isodate"`
	Time string `validate:"omitempty,hhmm"`
}

func TestCustomTags(t *testing.T) {
	validate := validator.New()
	Register(validate)

	cases := []struct {
		name  string
		in    sample
		valid bool
	}{
		{"valid", sample{Date: "2030-01-01", Time: "09:00"}, true},
		{"time optional", sample{Date: "2030-01-01"}, true},
		{"bad date", sample{Date: "2030-02-30", Time: "09:00"}, false},
		{"bad time", sample{Date: "2030-01-01", Time: "9am"}, false},
		{"out of range time", sample{Date: "2030-01-01", Time: "24:00"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(tc.in)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
