package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gigvora/gigvora-backend/internal/httperr"
)

// NumberField coerces numeric or string input into a float64. Out-of-range
// and non-numeric input is rejected, never clamped.
type NumberField struct {
	required  bool
	hasMin    bool
	hasMax    bool
	min       float64
	max       float64
	integer   bool
	precision int // decimal places to round to; -1 = keep as-is
}

// Number returns a required number rule.
func Number() *NumberField {
	return &NumberField{required: true, precision: -1}
}

// OptionalNumber returns an optional number rule.
func OptionalNumber() *NumberField {
	return &NumberField{precision: -1}
}

// Min sets the inclusive lower bound.
func (n *NumberField) Min(v float64) *NumberField {
	n.hasMin = true
	n.min = v
	return n
}

// Max sets the inclusive upper bound.
func (n *NumberField) Max(v float64) *NumberField {
	n.hasMax = true
	n.max = v
	return n
}

// Int rejects non-integral values.
func (n *NumberField) Int() *NumberField {
	n.integer = true
	return n
}

// Precision rounds the coerced value to the given number of decimal places.
func (n *NumberField) Precision(places int) *NumberField {
	n.precision = places
	return n
}

func (n *NumberField) Validate(path string, raw any, present bool) (any, bool, []httperr.Issue) {
	if !present || raw == nil {
		if n.required {
			return nil, false, []httperr.Issue{{Path: path, Message: "is required", Code: httperr.CodeRequired}}
		}
		return nil, false, nil
	}
	value, ok, empty := coerceFloat(raw)
	if empty {
		if n.required {
			return nil, false, []httperr.Issue{{Path: path, Message: "is required", Code: httperr.CodeRequired}}
		}
		return nil, false, nil
	}
	if !ok {
		return nil, false, []httperr.Issue{{Path: path, Message: "must be a number", Code: httperr.CodeInvalidType}}
	}
	if n.precision >= 0 {
		shift := math.Pow10(n.precision)
		value = math.Round(value*shift) / shift
	}
	if n.integer && value != math.Trunc(value) {
		return nil, false, []httperr.Issue{{Path: path, Message: "must be an integer", Code: httperr.CodeInvalidType}}
	}
	if n.hasMin && value < n.min {
		return nil, false, []httperr.Issue{{
			Path:    path,
			Message: fmt.Sprintf("must be at least %s", formatBound(n.min)),
			Code:    httperr.CodeTooSmall,
		}}
	}
	if n.hasMax && value > n.max {
		return nil, false, []httperr.Issue{{
			Path:    path,
			Message: fmt.Sprintf("must be at most %s", formatBound(n.max)),
			Code:    httperr.CodeTooBig,
		}}
	}
	return value, true, nil
}

// coerceFloat accepts the numeric shapes JSON decoding and query parsing
// produce. empty reports a blank string, which optional fields treat as
// absent.
func coerceFloat(raw any) (value float64, ok bool, empty bool) {
	switch v := raw.(type) {
	case float64:
		return v, true, false
	case float32:
		return float64(v), true, false
	case int:
		return float64(v), true, false
	case int64:
		return float64(v), true, false
	case json.Number:
		f, err := v.Float64()
		return f, err == nil, false
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, true
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil, false
	default:
		return 0, false, false
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
