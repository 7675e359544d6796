package schema

import (
	"fmt"
	"strings"

	"github.com/gigvora/gigvora-backend/internal/httperr"
)

type foldMode int

const (
	foldNone foldMode = iota
	foldLower
	foldUpper
)

// StringField trims its input. The required variant rejects empty-after-trim
// input; the optional variant maps it to absence.
type StringField struct {
	required bool
	max      int
	fold     foldMode
}

// String returns a required trimmed-string rule.
func String() *StringField {
	return &StringField{required: true}
}

// OptionalString returns an optional trimmed-string rule.
func OptionalString() *StringField {
	return &StringField{}
}

// Max caps the trimmed length.
func (s *StringField) Max(n int) *StringField {
	s.max = n
	return s
}

// Lower folds the value to lowercase after trimming.
func (s *StringField) Lower() *StringField {
	s.fold = foldLower
	return s
}

// Upper folds the value to uppercase after trimming.
func (s *StringField) Upper() *StringField {
	s.fold = foldUpper
	return s
}

func (s *StringField) Validate(path string, raw any, present bool) (any, bool, []httperr.Issue) {
	if !present || raw == nil {
		if s.required {
			return nil, false, []httperr.Issue{{Path: path, Message: "is required", Code: httperr.CodeRequired}}
		}
		return nil, false, nil
	}
	str, ok := raw.(string)
	if !ok {
		return nil, false, []httperr.Issue{{Path: path, Message: "must be a string", Code: httperr.CodeInvalidType}}
	}
	value := strings.TrimSpace(str)
	if value == "" {
		if s.required {
			return nil, false, []httperr.Issue{{Path: path, Message: "must not be empty", Code: httperr.CodeTooSmall}}
		}
		return nil, false, nil
	}
	switch s.fold {
	case foldLower:
		value = strings.ToLower(value)
	case foldUpper:
		value = strings.ToUpper(value)
	}
	if s.max > 0 && len(value) > s.max {
		return nil, false, []httperr.Issue{{
			Path:    path,
			Message: fmt.Sprintf("must be at most %d characters", s.max),
			Code:    httperr.CodeTooBig,
		}}
	}
	return value, true, nil
}
