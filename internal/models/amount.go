package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a whole-Rupiah value. The API encodes prices either as JSON
// numbers or as decimal strings ("150000.00"); anything unparsable decodes to 0.
type Amount int64

func (a *Amount) UnmarshalJSON(b []byte) error {
	f, ok := parseLooseNumber(b)
	if !ok {
		*a = 0
		return nil
	}
	*a = Amount(math.Round(f))
	return nil
}

// Decimal is a float that may arrive as a number or a numeric string.
type Decimal float64

func (d *Decimal) UnmarshalJSON(b []byte) error {
	f, ok := parseLooseNumber(b)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		*d = 0
		return nil
	}
	*d = Decimal(f)
	return nil
}

func parseLooseNumber(b []byte) (float64, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return 0, false
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return 0, false
	}
	return f, true
}
