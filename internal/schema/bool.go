package schema

import (
	"strings"

	"github.com/gigvora/gigvora-backend/internal/httperr"
)

// BoolField accepts native booleans, numeric 0/1, and a fixed vocabulary of
// string tokens. Lenient mode treats unrecognized input as absent; Strict
// rejects it.
type BoolField struct {
	strict bool
}

// Bool returns an optional, lenient boolean rule.
func Bool() *BoolField {
	return &BoolField{}
}

// Strict makes unrecognized input a rejection instead of absence.
func (b *BoolField) Strict() *BoolField {
	b.strict = true
	return b
}

func (b *BoolField) Validate(path string, raw any, present bool) (any, bool, []httperr.Issue) {
	if !present || raw == nil {
		return nil, false, nil
	}
	if value, ok := coerceBool(raw); ok {
		return value, true, nil
	}
	if b.strict {
		return nil, false, []httperr.Issue{{Path: path, Message: "must be a boolean", Code: httperr.CodeInvalidType}}
	}
	return nil, false, nil
}

func coerceBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case float64:
		if v == 0 {
			return false, true
		}
		if v == 1 {
			return true, true
		}
	case int:
		if v == 0 {
			return false, true
		}
		if v == 1 {
			return true, true
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1", "on":
			return true, true
		case "false", "no", "0", "off":
			return false, true
		}
	}
	return false, false
}
