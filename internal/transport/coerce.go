package transport

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number accepts a JSON number or a numeric string. Present reports whether
// the field carried a non-null value; Valid whether it parsed as a finite number.
type Number struct {
	Value   float64
	Present bool
	Valid   bool
}

func NewNumber(v float64) Number {
	return Number{Value: v, Present: true, Valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	n.Present = true

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		n.Value, n.Valid = v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			n.Value, n.Valid = f, true
		}
	case bool:
		if v {
			n.Value = 1
		}
		n.Valid = true
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Present {
		return []byte("null"), nil
	}
	return json.Marshal(n.OrZero())
}

// OrZero is the coerced value: anything unparseable becomes 0.
func (n Number) OrZero() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// Flag is a boolean that follows truthiness for non-boolean JSON values.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case float64:
		*f = Flag(v != 0 && !math.IsNaN(v))
	case string:
		*f = Flag(v != "")
	default:
		*f = true
	}
	return nil
}

// Text is a string that also tolerates numbers, booleans and null.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(v)
	case float64:
		*t = Text(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*t = Text(strconv.FormatBool(v))
	default:
		*t = ""
	}
	return nil
}

func (t Text) Or(def string) string {
	if t == "" {
		return def
	}
	return string(t)
}
