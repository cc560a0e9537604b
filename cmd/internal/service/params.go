package service

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// IntParam is an integer field that the booking form may send either as
// a JSON number or as a string ("2").
type IntParam int

func (p *IntParam) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return p.UnmarshalParam(s)
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = IntParam(n)
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query binding.
func (p *IntParam) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*p = 0
		return nil
	}
	n, err := strconv.Atoi(param)
	if err != nil {
		return err
	}
	*p = IntParam(n)
	return nil
}
