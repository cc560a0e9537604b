package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2030-01-01", "09:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2030-01-01T09:00", FormatDateTime(got))
}

func TestParseDateTime_Invalid(t *testing.T) {
	cases := []struct {
		name, date, clock string
	}{
		{"empty", "", ""},
		{"bad month", "2030-13-01", "09:00"},
		{"bad hour", "2030-01-01", "25:00"},
		{"slashes", "01/01/2030", "09:00"},
		{"seconds", "2030-01-01", "09:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDateTime(tc.date, tc.clock)
			assert.Error(t, err)
		})
	}
}

func TestSanitize(t *testing.T) {
	type req struct {
		Name  string
		Tags  []string
		Count int
	}
	r := &req{Name: "  Amy ", Tags: []string{" a", "b "}, Count: 3}
	Sanitize(r)

	assert.Equal(t, "Amy", r.Name)
	assert.Equal(t, []string{"a", "b"}, r.Tags)
	assert.Equal(t, 3, r.Count)
}

func TestSanitize_PanicsOnNonPointer(t *testing.T) {
	assert.Panics(t, func() { Sanitize(struct{}{}) })
}
