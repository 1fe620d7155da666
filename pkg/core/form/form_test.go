package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/openwms/procflow/pkg/core/catalog"
)

func f64(v float64) *float64 { return &v }

func testFields() []*catalog.FieldSchema {
	return []*catalog.FieldSchema{
		{ID: "dock_number", Label: "Dock Number", Type: catalog.FieldText, Required: true,
			Validation: &catalog.FieldValidation{Pattern: `^DOCK-\d{2}$`}},
		{ID: "capacity", Label: "Capacity", Type: catalog.FieldNumber, Required: true,
			DefaultValue: 10,
			Validation:   &catalog.FieldValidation{Min: f64(0), Max: f64(100)}},
		{ID: "operating_hours", Label: "Operating Hours", Type: catalog.FieldDropdown,
			Required: true, DefaultValue: "24x7",
			Options: []catalog.FieldOption{
				{Value: "24x7", Label: "24/7"},
				{Value: "business", Label: "Business Hours"},
			}},
		{ID: "hazmat_certified", Label: "Hazmat Certified", Type: catalog.FieldCheckbox,
			Group: "safety-settings"},
		{ID: "allowed_equipment", Label: "Allowed Equipment", Type: catalog.FieldMultiselect,
			Group: "safety-settings",
			Options: []catalog.FieldOption{
				{Value: "forklift", Label: "Forklift"},
				{Value: "pallet_jack", Label: "Pallet Jack"},
			}},
		{ID: "notes", Label: "Notes", Type: catalog.FieldTextarea, Group: "operational-notes"},
	}
}

func TestDefaultsResolutionOrder(t *testing.T) {
	g := NewGenerator(testFields())

	// No current values: schema default, then type zero.
	vals := g.Defaults(nil)
	assert.Equal(t, "", vals["dock_number"])
	assert.Equal(t, float64(10), vals["capacity"])
	assert.Equal(t, "24x7", vals["operating_hours"])
	assert.Equal(t, false, vals["hazmat_certified"])
	assert.Equal(t, []string{}, vals["allowed_equipment"])

	// Current values win over schema defaults.
	vals = g.Defaults(Values{"capacity": float64(42)})
	assert.Equal(t, float64(42), vals["capacity"])
}

func TestDefaultsIsIdempotent(t *testing.T) {
	g := NewGenerator(testFields())
	first := g.Defaults(nil)
	second := g.Defaults(first)
	assert.Equal(t, first, second)
}

func TestRenderSections(t *testing.T) {
	g := NewGenerator(testFields())
	f := g.Render(nil)

	require.Len(t, f.Sections, 3)

	primary := f.Sections[0]
	assert.True(t, primary.Primary)
	assert.False(t, primary.Collapsed)
	assert.Equal(t, "General", primary.Title)
	assert.Len(t, primary.Controls, 3)

	// Named groups in first-appearance order, collapsed, title-cased.
	assert.Equal(t, "safety-settings", f.Sections[1].Name)
	assert.Equal(t, "Safety Settings", f.Sections[1].Title)
	assert.True(t, f.Sections[1].Collapsed)
	assert.Equal(t, "Operational Notes", f.Sections[2].Title)
}

func TestRenderCheckboxExplainerFallback(t *testing.T) {
	g := NewGenerator([]*catalog.FieldSchema{
		{ID: "a", Label: "A", Type: catalog.FieldCheckbox},
		{ID: "b", Label: "B", Type: catalog.FieldCheckbox, Explainer: "Custom caption"},
	})
	f := g.Render(nil)
	require.Len(t, f.Sections, 1)
	assert.Equal(t, "Enable this option", f.Sections[0].Controls[0].Explainer)
	assert.Equal(t, "Custom caption", f.Sections[0].Controls[1].Explainer)
}

func TestGroupTitle(t *testing.T) {
	assert.Equal(t, "Safety Settings", GroupTitle("safety-settings"))
	assert.Equal(t, "Primary", GroupTitle("primary"))
	assert.Equal(t, "Untitled Group", GroupTitle(""))
}

func TestSubmitRoundTrip(t *testing.T) {
	g := NewGenerator(testFields())
	out, errs := g.Submit(Values{
		"dock_number":       "DOCK-01",
		"capacity":          float64(50),
		"operating_hours":   "business",
		"hazmat_certified":  true,
		"allowed_equipment": []string{"forklift"},
		"notes":             "night shift only",
	})
	require.True(t, errs.Ok())
	assert.Equal(t, "DOCK-01", out["dock_number"])
	assert.Equal(t, float64(50), out["capacity"])
	assert.Equal(t, []string{"forklift"}, out["allowed_equipment"])
}

func TestSubmitRequiredEmpty(t *testing.T) {
	g := NewGenerator(testFields())
	out, errs := g.Submit(Values{
		"dock_number":     "",
		"capacity":        float64(1),
		"operating_hours": "24x7",
	})
	assert.Nil(t, out)
	assert.Contains(t, errs, "dock_number")
}

func TestSubmitNumberBoundaries(t *testing.T) {
	g := NewGenerator(testFields())
	base := Values{"dock_number": "DOCK-01", "operating_hours": "24x7"}

	for _, v := range []float64{0, 100} {
		base["capacity"] = v
		_, errs := g.Submit(base)
		assert.Truef(t, errs.Ok(), "capacity %v should pass", v)
	}
	for _, v := range []float64{-1, 101} {
		base["capacity"] = v
		_, errs := g.Submit(base)
		assert.Containsf(t, errs, "capacity", "capacity %v should fail", v)
	}
}

func TestSubmitPatternMismatch(t *testing.T) {
	g := NewGenerator(testFields())
	_, errs := g.Submit(Values{
		"dock_number":     "dock1",
		"capacity":        float64(1),
		"operating_hours": "24x7",
	})
	assert.Contains(t, errs, "dock_number")
}

func TestSubmitDropdownOutsideOptions(t *testing.T) {
	g := NewGenerator(testFields())
	_, errs := g.Submit(Values{
		"dock_number":     "DOCK-01",
		"capacity":        float64(1),
		"operating_hours": "weekends",
	})
	assert.Contains(t, errs, "operating_hours")
}

func TestSanitizeNumberNeverKeepsStrings(t *testing.T) {
	g := NewGenerator(testFields())
	out, errs := g.Submit(Values{
		"dock_number":     "DOCK-01",
		"capacity":        "55",
		"operating_hours": "24x7",
	})
	require.True(t, errs.Ok())
	assert.Equal(t, float64(55), out["capacity"])

	// Non-numeric strings coerce to zero, which is within [0,100] here.
	out, errs = g.Submit(Values{
		"dock_number":     "DOCK-01",
		"capacity":        "plenty",
		"operating_hours": "24x7",
	})
	require.True(t, errs.Ok())
	assert.Equal(t, float64(0), out["capacity"])
}

func TestSanitizeNumberRejectsNonFinite(t *testing.T) {
	g := NewGenerator(testFields())

	// ParseFloat happily yields NaN and the infinities; none may reach
	// a stored configuration, so all collapse to zero.
	for _, v := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "Infinity"} {
		out, errs := g.Submit(Values{
			"dock_number":     "DOCK-01",
			"capacity":        v,
			"operating_hours": "24x7",
		})
		require.Truef(t, errs.Ok(), "capacity %q", v)
		assert.Equalf(t, float64(0), out["capacity"], "capacity %q", v)
	}
}

func TestSanitizeMultiselectDropsUnknownAndDuplicates(t *testing.T) {
	g := NewGenerator(testFields())
	out, errs := g.Submit(Values{
		"dock_number":       "DOCK-01",
		"capacity":          float64(1),
		"operating_hours":   "24x7",
		"allowed_equipment": []any{"forklift", "crane", "forklift", "pallet_jack"},
	})
	require.True(t, errs.Ok())
	assert.Equal(t, []string{"forklift", "pallet_jack"}, out["allowed_equipment"])
}

func TestSubmitMissingFieldsGetZeroValues(t *testing.T) {
	g := NewGenerator([]*catalog.FieldSchema{
		{ID: "flag", Label: "Flag", Type: catalog.FieldCheckbox},
		{ID: "count", Label: "Count", Type: catalog.FieldNumber},
	})
	out, errs := g.Submit(Values{})
	require.True(t, errs.Ok())
	assert.Equal(t, false, out["flag"])
	assert.Equal(t, float64(0), out["count"])
}
