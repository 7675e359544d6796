package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gigvora/gigvora-backend/internal/httperr"
)

// SliceField normalizes a native list or a single comma-delimited string
// into a list of trimmed, non-empty strings. Always optional: an input that
// normalizes to nothing is absent, not an empty list.
type SliceField struct {
	maxItems   int
	maxItemLen int
}

// StringSlice returns a string-list rule.
func StringSlice() *SliceField {
	return &SliceField{}
}

// MaxItems caps the overall item count.
func (s *SliceField) MaxItems(n int) *SliceField {
	s.maxItems = n
	return s
}

// MaxItemLen caps the length of each trimmed item.
func (s *SliceField) MaxItemLen(n int) *SliceField {
	s.maxItemLen = n
	return s
}

func (s *SliceField) Validate(path string, raw any, present bool) (any, bool, []httperr.Issue) {
	if !present || raw == nil {
		return nil, false, nil
	}
	var parts []string
	switch v := raw.(type) {
	case []string:
		parts = v
	case []any:
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, false, []httperr.Issue{{
					Path:    path + "." + strconv.Itoa(i),
					Message: "must be a string",
					Code:    httperr.CodeInvalidType,
				}}
			}
			parts = append(parts, str)
		}
	case string:
		parts = strings.Split(v, ",")
	default:
		return nil, false, []httperr.Issue{{Path: path, Message: "must be a list of strings", Code: httperr.CodeInvalidType}}
	}
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			items = append(items, p)
		}
	}
	if len(items) == 0 {
		return nil, false, nil
	}
	if s.maxItems > 0 && len(items) > s.maxItems {
		return nil, false, []httperr.Issue{{
			Path:    path,
			Message: fmt.Sprintf("must contain at most %d items", s.maxItems),
			Code:    httperr.CodeTooBig,
		}}
	}
	if s.maxItemLen > 0 {
		for i, item := range items {
			if len(item) > s.maxItemLen {
				return nil, false, []httperr.Issue{{
					Path:    path + "." + strconv.Itoa(i),
					Message: fmt.Sprintf("must be at most %d characters", s.maxItemLen),
					Code:    httperr.CodeTooBig,
				}}
			}
		}
	}
	return items, true, nil
}
