package schema

import (
	"fmt"
	"strings"

	"github.com/gigvora/gigvora-backend/internal/httperr"
)

// EnumField matches a trimmed, lower-cased string against a fixed
// vocabulary. Rejections enumerate the valid options.
type EnumField struct {
	required bool
	values   []string
}

// Enum returns a required enum rule over the given vocabulary.
func Enum(values ...string) *EnumField {
	return &EnumField{required: true, values: values}
}

// OptionalEnum returns an optional enum rule over the given vocabulary.
func OptionalEnum(values ...string) *EnumField {
	return &EnumField{values: values}
}

func (e *EnumField) Validate(path string, raw any, present bool) (any, bool, []httperr.Issue) {
	if !present || raw == nil {
		if e.required {
			return nil, false, []httperr.Issue{{Path: path, Message: "is required", Code: httperr.CodeRequired}}
		}
		return nil, false, nil
	}
	str, ok := raw.(string)
	if !ok {
		return nil, false, []httperr.Issue{{Path: path, Message: "must be a string", Code: httperr.CodeInvalidType}}
	}
	value := strings.ToLower(strings.TrimSpace(str))
	if value == "" {
		if e.required {
			return nil, false, []httperr.Issue{{Path: path, Message: "is required", Code: httperr.CodeRequired}}
		}
		return nil, false, nil
	}
	for _, v := range e.values {
		if value == v {
			return value, true, nil
		}
	}
	return nil, false, []httperr.Issue{{
		Path:    path,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(e.values, ", ")),
		Code:    httperr.CodeInvalidEnumValue,
	}}
}
