package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/gigvora/gigvora-backend/internal/httperr"
	"github.com/gigvora/gigvora-backend/internal/pkg/metrics"
	"github.com/gigvora/gigvora-backend/internal/schema"
)

// Schemas configures the validation stage: up to five independently optional
// schemas keyed by request segment.
type Schemas struct {
	Body    *schema.Object
	Query   *schema.Object
	Params  *schema.Object
	Headers *schema.Object
	Cookies *schema.Object
}

// Validated carries the coerced output of each validated segment. Handlers
// read these instead of the raw wire input. Header output is not carried
// here: validated header values are merged back into r.Header so unrelated
// transport headers survive.
type Validated struct {
	Body    map[string]any
	Query   map[string]any
	Params  map[string]any
	Cookies map[string]any
}

type validatedKeyType struct{}

var validatedKey validatedKeyType

// ValidatedFromContext returns the validated segments for the request.
// Never nil; segments whose schema was not configured are nil maps.
func ValidatedFromContext(ctx context.Context) *Validated {
	if v, ok := ctx.Value(validatedKey).(*Validated); ok {
		return v
	}
	return &Validated{}
}

// ValidateRequest returns middleware that applies the configured schemas in
// a fixed segment order: body, query, params, headers, cookies. The first
// failing segment halts the chain with a single ValidationError carrying
// that segment's issues; later segments never run. An absent raw segment
// validates as an empty object so required-field rules still fire.
func ValidateRequest(s Schemas) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			validated := &Validated{}
			if s.Body != nil {
				raw, issue := decodeJSONBody(r)
				if issue != nil {
					rejectSegment(w, r, "body", []httperr.Issue{*issue})
					return
				}
				out, issues := s.Body.Validate(raw)
				if issues != nil {
					rejectSegment(w, r, "body", issues)
					return
				}
				validated.Body = out
			}
			if s.Query != nil {
				out, issues := s.Query.Validate(queryMap(r))
				if issues != nil {
					rejectSegment(w, r, "query", issues)
					return
				}
				validated.Query = out
			}
			if s.Params != nil {
				out, issues := s.Params.Validate(paramsMap(r))
				if issues != nil {
					rejectSegment(w, r, "params", issues)
					return
				}
				validated.Params = out
			}
			if s.Headers != nil {
				out, issues := s.Headers.Validate(headerMap(r))
				if issues != nil {
					rejectSegment(w, r, "headers", issues)
					return
				}
				// Merge rather than replace: transport headers not covered
				// by the schema must survive.
				for k, v := range out {
					r.Header.Set(k, fmt.Sprint(v))
				}
			}
			if s.Cookies != nil {
				out, issues := s.Cookies.Validate(cookieMap(r))
				if issues != nil {
					rejectSegment(w, r, "cookies", issues)
					return
				}
				validated.Cookies = out
			}
			ctx := context.WithValue(r.Context(), validatedKey, validated)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectSegment(w http.ResponseWriter, r *http.Request, segment string, issues []httperr.Issue) {
	metrics.ValidationFailuresTotal.WithLabelValues(segment).Inc()
	writeValidationError(w, r, httperr.Validation("Request validation failed.", issues))
}

// decodeJSONBody reads the request body into a generic map. No body, or an
// empty body, decodes to an empty object. A body that is not a JSON object
// is itself a validation failure, reported at the root path.
func decodeJSONBody(r *http.Request) (map[string]any, *httperr.Issue) {
	if r.Body == nil {
		return map[string]any{}, nil
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, &httperr.Issue{Path: "", Message: "request body could not be read", Code: httperr.CodeInvalidType}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]any{}, nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &httperr.Issue{Path: "", Message: "request body must be a JSON object", Code: httperr.CodeInvalidType}
	}
	return raw, nil
}

// queryMap flattens the query string to one value per key. Multi-valued
// keys keep their first value; lists travel comma-delimited and are split
// by the string-slice rule.
func queryMap(r *http.Request) map[string]any {
	out := make(map[string]any)
	for k, values := range r.URL.Query() {
		if len(values) > 0 {
			out[k] = values[0]
		}
	}
	return out
}

func paramsMap(r *http.Request) map[string]any {
	out := make(map[string]any)
	for k, v := range mux.Vars(r) {
		out[k] = v
	}
	return out
}

// headerMap normalizes header keys to lowercase at the boundary; header
// schemas declare lowercase field names.
func headerMap(r *http.Request) map[string]any {
	out := make(map[string]any)
	for k, values := range r.Header {
		if len(values) > 0 {
			out[strings.ToLower(k)] = values[0]
		}
	}
	return out
}

func cookieMap(r *http.Request) map[string]any {
	out := make(map[string]any)
	for _, c := range r.Cookies() {
		if _, seen := out[c.Name]; !seen {
			out[c.Name] = c.Value
		}
	}
	return out
}
