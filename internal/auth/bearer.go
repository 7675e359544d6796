package auth

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// BearerFromHeader extracts the bearer credential from a header map, or ""
// when none is present. Pure function of its input: the canonical
// Authorization key and its lowercase variant are both checked (not every
// transport normalizes header casing), only the first value of a
// multi-valued header counts, and a leading "Bearer " scheme marker is
// stripped. Clients that send the bare token without the scheme are
// tolerated.
func BearerFromHeader(h http.Header) string {
	values := h["Authorization"]
	if len(values) == 0 {
		values = h["authorization"]
	}
	if len(values) == 0 {
		return ""
	}
	raw := strings.TrimSpace(values[0])
	if raw == "" {
		return ""
	}
	if len(raw) > len(bearerPrefix) && strings.EqualFold(raw[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(raw[len(bearerPrefix):])
	}
	return raw
}
