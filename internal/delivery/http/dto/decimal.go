package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// NotANumberMessage is the field error for unparsable numeric input.
const NotANumberMessage = "A valid number is required."

var ErrNotANumber = errors.New("not a number")

// Decimal accepts a JSON number or a numeric string. Null and "" leave it unset.
type Decimal struct {
	Value *float64
}

func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		d.Value = nil
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ErrNotANumber
		}
		raw = s
	}
	v, err := ParseDecimal(raw)
	if err != nil {
		return err
	}
	d.Value = v
	return nil
}

// ParseDecimal parses a form or query value. Blank input yields nil.
func ParseDecimal(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, ErrNotANumber
	}
	return &v, nil
}

func formatDecimal(v *float64) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatFloat(*v, 'f', 2, 64)
	return &s
}
