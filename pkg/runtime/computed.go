package runtime

import (
	"fmt"
	"regexp"
	"strings"
)

// ComputeFunc derives a value from the current value map. Implementations
// must be pure: same inputs, same output, no side effects.
type ComputeFunc func(values map[string]any) string

// ConcatSpec joins the dependency values, in DependsOn order, with a
// separator.
type ConcatSpec struct {
	Separator string
}

// ComputedSpec declares how one field's value is derived from others.
// Exactly one of Func, Template or Concat must be set. Template uses
// {name} placeholders that expand to the named field's string value.
type ComputedSpec struct {
	DependsOn []string
	Func      ComputeFunc
	Template  string
	Concat    *ConcatSpec
}

func (s ComputedSpec) strategyCount() int {
	n := 0
	if s.Func != nil {
		n++
	}
	if s.Template != "" {
		n++
	}
	if s.Concat != nil {
		n++
	}
	return n
}

// satisfied reports whether every dependency has a non-empty value.
func (s ComputedSpec) satisfied(values map[string]any) bool {
	for _, dep := range s.DependsOn {
		if isEmpty(values[dep]) {
			return false
		}
	}
	return true
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_.-]+)\}`)

func expandTemplate(tpl string, values map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(tpl, func(m string) string {
		name := m[1 : len(m)-1]
		if s, ok := stringValue(values[name]); ok {
			return s
		}
		return ""
	})
}

func (s ComputedSpec) compute(values map[string]any) string {
	switch {
	case s.Func != nil:
		return s.Func(values)
	case s.Template != "":
		return expandTemplate(s.Template, values)
	case s.Concat != nil:
		parts := make([]string, 0, len(s.DependsOn))
		for _, dep := range s.DependsOn {
			if str, ok := stringValue(values[dep]); ok {
				parts = append(parts, str)
			}
		}
		return strings.Join(parts, s.Concat.Separator)
	}
	return ""
}

// Resolution is the outcome of evaluating one computed spec against a value
// map. When Satisfied is false the target field should fall back to manual
// editing and any previously derived value should be discarded.
type Resolution struct {
	Field     string
	Satisfied bool
	Value     string
}

// ResolveComputed evaluates every spec against the value map and returns one
// Resolution per spec, ordered by the supplied field order. It never mutates
// its inputs; applying the resolutions is the caller's job.
func ResolveComputed(values map[string]any, specs map[string]ComputedSpec, order []string) []Resolution {
	out := make([]Resolution, 0, len(specs))
	for _, name := range order {
		spec, ok := specs[name]
		if !ok {
			continue
		}
		res := Resolution{Field: name}
		if spec.satisfied(values) {
			res.Satisfied = true
			res.Value = spec.compute(values)
		}
		out = append(out, res)
	}
	return out
}

// validateSpecs rejects self-referential specs, dependencies on other
// computed fields, specs for unknown fields and specs without exactly one
// strategy. Dependency chains are capped at one hop so resolution settles in
// a single pass.
func validateSpecs(specs map[string]ComputedSpec, known map[string]bool) error {
	for name, spec := range specs {
		if !known[name] {
			return &DependencyError{FieldID: name, Reason: "spec targets a field not in the schema"}
		}
		if len(spec.DependsOn) == 0 {
			return &DependencyError{FieldID: name, Reason: "spec declares no dependencies"}
		}
		if n := spec.strategyCount(); n != 1 {
			return &DependencyError{FieldID: name, Reason: fmt.Sprintf("spec must set exactly one strategy, got %d", n)}
		}
		for _, dep := range spec.DependsOn {
			if dep == name {
				return &DependencyError{FieldID: name, Reason: "spec depends on itself"}
			}
			if _, computed := specs[dep]; computed {
				return &DependencyError{FieldID: name, Reason: fmt.Sprintf("spec depends on computed field %q", dep)}
			}
		}
	}
	return nil
}
