package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quantity is an optional amount. The zero value is unspecified, which is
// distinct from a set value of 0.
//
// JSON: a number when set, "" when unspecified. null, "" and numeric strings
// are accepted on decode.
type Quantity struct {
	Value float64
	Set   bool
}

func Qty(v float64) Quantity { return Quantity{Value: v, Set: true} }

// ParseQuantity parses form input. Blank input is unspecified.
func ParseQuantity(raw string) (Quantity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Quantity{}, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Quantity{}, fmt.Errorf("not a number: %q", raw)
	}
	return Qty(v), nil
}

// CoerceQuantity converts raw input to a finite, non-negative amount.
// Anything unparsable becomes 0.
func CoerceQuantity(raw string) float64 {
	q, err := ParseQuantity(raw)
	if err != nil || !q.Set {
		return 0
	}
	return math.Max(0, q.Value)
}

func (q Quantity) String() string {
	if !q.Set {
		return ""
	}
	return FormatNumber(q.Value)
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Set {
		return []byte(`""`), nil
	}
	return []byte(FormatNumber(q.Value)), nil
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*q = Quantity{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseQuantity(s)
		if err != nil {
			return err
		}
		*q = parsed
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("qty: %w", err)
	}
	*q = Qty(v)
	return nil
}

// FormatNumber renders integers without a fractional part.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatQty renders "6 pcs" or "6" for unitless counts.
func FormatQty(v float64, unit string) string {
	s := FormatNumber(v)
	if unit = strings.TrimSpace(unit); unit != "" {
		return s + " " + unit
	}
	return s
}
