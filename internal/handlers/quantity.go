package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var errBadQuantity = errors.New("quantity is not a whole number")

// Quantity is a cart quantity field. Clients send it as a JSON number or a
// numeric string; either form is parsed into an int here, at the boundary,
// so the cart contract only ever sees typed values. A fractional or
// non-numeric value is a parse error, and absence is distinguishable from
// zero.
type Quantity struct {
	value int
	set   bool
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errBadQuantity
	}
	n := int(f)
	if float64(n) != f {
		return errBadQuantity
	}
	q.value = n
	q.set = true
	return nil
}

// Set reports whether the field was present in the request body.
func (q Quantity) Set() bool {
	return q.set
}

// Value returns the parsed quantity, or fallback when the field was absent.
func (q Quantity) Value(fallback int) int {
	if !q.set {
		return fallback
	}
	return q.value
}
