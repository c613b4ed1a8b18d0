package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LooseInt decodes any JSON number (3, 3.0, 1e3) or numeric string into an
// int64, truncating toward zero. Anything else decodes to 0 instead of failing.
type LooseInt int64

func (n *LooseInt) UnmarshalJSON(b []byte) error {
	*n = LooseInt(truncate(looseFloat(b)))
	return nil
}

// looseFloat reads a JSON token as a number. Non-numeric tokens give NaN.
func looseFloat(raw []byte) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return math.NaN()
		}
		raw = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(math.Trunc(f))
}
