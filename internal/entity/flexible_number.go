package entity

import (
	"bytes"
	"strconv"
)

// FlexibleNumber holds a numeric field that providers send either as a JSON number or as a
// quoted string. The textual form is kept as-is so big integers survive decoding.
type FlexibleNumber string

// UnmarshalJSON accepts 123, 1.5, "123", "1.5" and null.
func (n *FlexibleNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*n = FlexibleNumber(s)
		return nil
	}
	*n = FlexibleNumber(data)
	return nil
}

// String returns the raw textual value.
func (n FlexibleNumber) String() string {
	return string(n)
}

// IsSet reports whether a value was present.
func (n FlexibleNumber) IsSet() bool {
	return n != ""
}

// Float64 parses the value. ok is false when the value is absent or not a number.
func (n FlexibleNumber) Float64() (float64, bool) {
	if n == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
