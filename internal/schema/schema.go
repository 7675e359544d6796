// Package schema provides composable field rules for validating request
// segments (body, query, path params, headers, cookies). Every route builds
// its input schemas from the same small set of builders so coercion and
// rejection behave identically across the API instead of being re-implemented
// per handler.
//
// A schema is an Object holding declared fields; input keys that are not
// declared are stripped from the output unless the schema opts into
// Passthrough. Each field rule coerces its raw input, applies bound checks,
// and reports issues with a dot-joined path and a machine-readable code.
package schema

import "github.com/gigvora/gigvora-backend/internal/httperr"

// Field validates one declared member of an Object. present reports whether
// the key existed in the raw input at all. include=false means the field is
// absent from the validated output (optional fields map empty input to
// absence, never to a zero value).
type Field interface {
	Validate(path string, raw any, present bool) (value any, include bool, issues []httperr.Issue)
}

type refinement struct {
	path    string
	check   func(out map[string]any) bool
	message string
}

// Object is a declarative description of one request segment. Constructed
// once at route-registration time and reused across requests; never mutated
// after that.
type Object struct {
	names       []string
	fields      map[string]Field
	passthrough bool
	refinements []refinement
}

func NewObject() *Object {
	return &Object{fields: make(map[string]Field)}
}

// Field declares a member. Declaration order determines issue order.
func (o *Object) Field(name string, f Field) *Object {
	if _, exists := o.fields[name]; !exists {
		o.names = append(o.names, name)
	}
	o.fields[name] = f
	return o
}

// Passthrough keeps undeclared input keys in the validated output instead of
// stripping them.
func (o *Object) Passthrough() *Object {
	o.passthrough = true
	return o
}

// Refine declares a whole-object predicate evaluated after all per-field
// rules pass. A failing predicate attaches a "custom" issue at the path the
// schema author chose.
func (o *Object) Refine(path string, check func(out map[string]any) bool, message string) *Object {
	o.refinements = append(o.refinements, refinement{path: path, check: check, message: message})
	return o
}

// Validate runs the schema against raw input (nil is treated as an empty
// object) and returns the coerced output, or the ordered issues that reject
// it. Refinements only run when every field rule passed.
func (o *Object) Validate(raw map[string]any) (map[string]any, []httperr.Issue) {
	out := make(map[string]any)
	if o.passthrough {
		for k, v := range raw {
			if _, declared := o.fields[k]; !declared {
				out[k] = v
			}
		}
	}
	var issues []httperr.Issue
	for _, name := range o.names {
		rawValue, present := raw[name]
		value, include, fieldIssues := o.fields[name].Validate(name, rawValue, present)
		if len(fieldIssues) > 0 {
			issues = append(issues, fieldIssues...)
			continue
		}
		if include {
			out[name] = value
		}
	}
	if len(issues) > 0 {
		return nil, issues
	}
	for _, r := range o.refinements {
		if !r.check(out) {
			issues = append(issues, httperr.Issue{
				Path:    r.path,
				Message: r.message,
				Code:    httperr.CodeCustom,
			})
		}
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}
