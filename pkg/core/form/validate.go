package form

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	catalog "github.com/openwms/procflow/pkg/core/catalog"
)

// sanitizeValue coerces a raw value into the field type's canonical
// representation. A string never survives into a numeric field.
func sanitizeValue(f *catalog.FieldSchema, v any) any {
	switch f.Type {
	case catalog.FieldNumber:
		return coerceNumber(v)
	case catalog.FieldCheckbox:
		b, _ := v.(bool)
		return b
	case catalog.FieldMultiselect:
		return coerceMultiselect(f, v)
	default:
		s, _ := v.(string)
		return s
	}
}

func coerceNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil || !isFinite(f) {
			return 0
		}
		return f
	case string:
		// ParseFloat accepts "NaN" and "Inf"; neither belongs in a
		// stored configuration, so both collapse to the zero value.
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || !isFinite(f) {
			return 0
		}
		return f
	default:
		return 0
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// coerceMultiselect keeps submission order, drops duplicates and any
// value outside the field's option set.
func coerceMultiselect(f *catalog.FieldSchema, v any) []string {
	var raw []string
	switch list := v.(type) {
	case []string:
		raw = list
	case []any:
		raw = make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	default:
		return []string{}
	}

	allowed := make(map[string]struct{}, len(f.Options))
	for _, opt := range f.Options {
		allowed[opt.Value] = struct{}{}
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		if _, ok := allowed[s]; !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// validate dispatches on the field type tag; every constraint is plain
// data on the schema.
func (g *Generator) validate(values Values) FieldErrors {
	errs := make(FieldErrors)
	for _, f := range g.fields {
		if msg := g.validateField(f, values[f.ID]); msg != "" {
			errs[f.ID] = msg
		}
	}
	return errs
}

func (g *Generator) validateField(f *catalog.FieldSchema, v any) string {
	switch f.Type {
	case catalog.FieldText, catalog.FieldTextarea:
		s, _ := v.(string)
		if f.Required && s == "" {
			return fmt.Sprintf("%s is required", f.Label)
		}
		if s != "" && f.Type == catalog.FieldText {
			if re, ok := g.patterns[f.ID]; ok && !re.MatchString(s) {
				return fmt.Sprintf("%s does not match the expected format", f.Label)
			}
		}

	case catalog.FieldDropdown:
		s, _ := v.(string)
		if f.Required && s == "" {
			return fmt.Sprintf("%s is required", f.Label)
		}
		if s != "" && !hasOption(f, s) {
			return fmt.Sprintf("%s must be one of the listed options", f.Label)
		}

	case catalog.FieldNumber:
		n, ok := v.(float64)
		if !ok {
			return fmt.Sprintf("%s must be a number", f.Label)
		}
		if f.Validation != nil {
			if f.Validation.Min != nil && n < *f.Validation.Min {
				return fmt.Sprintf("%s must be at least %v", f.Label, *f.Validation.Min)
			}
			if f.Validation.Max != nil && n > *f.Validation.Max {
				return fmt.Sprintf("%s must be at most %v", f.Label, *f.Validation.Max)
			}
		}

	case catalog.FieldMultiselect:
		// Sanitation already restricted values to the option set.

	case catalog.FieldCheckbox:
		// A bool is always valid.
	}
	return ""
}

func hasOption(f *catalog.FieldSchema, value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
