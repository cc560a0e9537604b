package utils

import (
	"reflect"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = DateLayout + " " + TimeLayout
)

// ParseDateTime combines a "YYYY-MM-DD" date and a "HH:MM" time into one
// instant. There is no timezone on either part, so the result is UTC.
func ParseDateTime(date, clock string) (time.Time, error) {
	return time.Parse(DateTimeLayout, date+" "+clock)
}

func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02T15:04")
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
