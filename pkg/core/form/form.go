package form

import (
	"regexp"
	"strings"

	catalog "github.com/openwms/procflow/pkg/core/catalog"
)

// Generator turns a field list into a renderable, validated form. It
// never touches the graph store: callers hand in current values and
// receive a sanitized map back on submit.
type Generator struct {
	fields   []*catalog.FieldSchema
	patterns map[string]*regexp.Regexp
}

// NewGenerator compiles each field's validation pattern exactly once.
// Patterns are assumed valid: the catalog loader rejects documents
// with uncompilable regexes.
func NewGenerator(fields []*catalog.FieldSchema) *Generator {
	g := &Generator{
		fields:   fields,
		patterns: make(map[string]*regexp.Regexp),
	}
	for _, f := range fields {
		if f.Validation != nil && f.Validation.Pattern != "" {
			if re, err := regexp.Compile(f.Validation.Pattern); err == nil {
				g.patterns[f.ID] = re
			}
		}
	}
	return g
}

func (g *Generator) Fields() []*catalog.FieldSchema {
	return g.fields
}

// Defaults resolves the initial value for every field: current value,
// then the schema default, then the type's zero value. Deterministic
// for a given input pair.
func (g *Generator) Defaults(current Values) Values {
	out := make(Values, len(g.fields))
	for _, f := range g.fields {
		if v, ok := current[f.ID]; ok {
			out[f.ID] = sanitizeValue(f, v)
			continue
		}
		if f.DefaultValue != nil {
			out[f.ID] = sanitizeValue(f, f.DefaultValue)
			continue
		}
		out[f.ID] = zeroValue(f.Type)
	}
	return out
}

// Render partitions fields into the primary section plus one collapsed
// section per named group, in first-appearance order.
func (g *Generator) Render(current Values) *Form {
	defaults := g.Defaults(current)

	primary := &Section{Name: primaryGroup, Title: "General", Primary: true}
	named := make(map[string]*Section)
	order := make([]string, 0)

	for _, f := range g.fields {
		ctrl := &Control{Field: f, Value: defaults[f.ID]}
		if f.Type == catalog.FieldCheckbox {
			ctrl.Explainer = f.Explainer
			if ctrl.Explainer == "" {
				ctrl.Explainer = defaultExplainer
			}
		}

		group := f.Group
		if group == "" || group == primaryGroup {
			primary.Controls = append(primary.Controls, ctrl)
			continue
		}
		sec, ok := named[group]
		if !ok {
			sec = &Section{Name: group, Title: GroupTitle(group), Collapsed: true}
			named[group] = sec
			order = append(order, group)
		}
		sec.Controls = append(sec.Controls, ctrl)
	}

	form := &Form{}
	if len(primary.Controls) > 0 {
		form.Sections = append(form.Sections, primary)
	}
	for _, name := range order {
		form.Sections = append(form.Sections, named[name])
	}
	return form
}

// Submit validates and sanitizes a submission. On success the returned
// map contains exactly the field ids; on failure nothing is returned
// so no partial submit can leak through.
func (g *Generator) Submit(values Values) (Values, FieldErrors) {
	sanitized := make(Values, len(g.fields))
	for _, f := range g.fields {
		v, ok := values[f.ID]
		if !ok {
			sanitized[f.ID] = zeroValue(f.Type)
			continue
		}
		sanitized[f.ID] = sanitizeValue(f, v)
	}

	if errs := g.validate(sanitized); !errs.Ok() {
		return nil, errs
	}
	return sanitized, nil
}

// GroupTitle derives a display title from a group key: tokens split on
// "-", each title-cased.
func GroupTitle(group string) string {
	if group == "" {
		return "Untitled Group"
	}
	parts := strings.Split(group, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func zeroValue(t catalog.FieldType) any {
	switch t {
	case catalog.FieldNumber:
		return float64(0)
	case catalog.FieldCheckbox:
		return false
	case catalog.FieldMultiselect:
		return []string{}
	default:
		return ""
	}
}
