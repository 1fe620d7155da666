package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/openwms/procflow/pkg/core/catalog"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestLookupMissIsNotAnError(t *testing.T) {
	svc := New(Default())

	_, ok := svc.LocationType("does_not_exist")
	assert.False(t, ok)
	_, ok = svc.MovementTaskType("does_not_exist")
	assert.False(t, ok)
	_, ok = svc.LocationTaskType("does_not_exist")
	assert.False(t, ok)
}

func TestLookupByID(t *testing.T) {
	svc := New(Default())

	lt, ok := svc.LocationType("receiving_dock")
	require.True(t, ok)
	assert.Equal(t, "Receiving Dock", lt.Name)

	mt, ok := svc.MovementTaskType("transfer")
	require.True(t, ok)
	assert.False(t, mt.AllowMultiple)

	tt, ok := svc.LocationTaskType("loading")
	require.True(t, ok)
	assert.Equal(t, []string{"shipping_lane"}, tt.CompatibleLocationTypes)
}

func TestCompatibleTaskTypes(t *testing.T) {
	svc := New(Default())

	ids := func(types []*core.LocationTaskType) []string {
		out := make([]string, 0, len(types))
		for _, tt := range types {
			out = append(out, tt.ID)
		}
		return out
	}

	// receiving_dock supports receiving and quality_check, in document order.
	assert.Equal(t, []string{"receiving", "quality_check"},
		ids(svc.CompatibleTaskTypes("receiving_dock", nil)))

	// Already-attached types are filtered out.
	assert.Equal(t, []string{"quality_check"},
		ids(svc.CompatibleTaskTypes("receiving_dock", []string{"receiving"})))

	// Unknown location type yields nothing.
	assert.Empty(t, svc.CompatibleTaskTypes("nope", nil))
}

func TestValidateRejectsDuplicateTypeIDs(t *testing.T) {
	doc := Default()
	doc.LocationNodeTypes = append(doc.LocationNodeTypes, &core.LocationType{ID: "receiving_dock", Name: "Dup"})
	assert.Error(t, Validate(doc))
}

func TestValidateRejectsEmptyTypeID(t *testing.T) {
	doc := Default()
	doc.MovementTaskTypes = append(doc.MovementTaskTypes, &core.MovementTaskType{Name: "Anonymous"})
	assert.Error(t, Validate(doc))
}

func TestValidateRejectsDropdownWithoutOptions(t *testing.T) {
	doc := Default()
	doc.LocationNodeTypes[0].ConfigurationFields = append(doc.LocationNodeTypes[0].ConfigurationFields,
		&core.FieldSchema{ID: "broken", Label: "Broken", Type: core.FieldDropdown})
	assert.Error(t, Validate(doc))
}

func TestValidateRejectsBadPattern(t *testing.T) {
	doc := Default()
	doc.LocationNodeTypes[0].ConfigurationFields = append(doc.LocationNodeTypes[0].ConfigurationFields,
		&core.FieldSchema{ID: "broken", Label: "Broken", Type: core.FieldText,
			Validation: &core.FieldValidation{Pattern: "["}})
	assert.Error(t, Validate(doc))
}

func TestValidateRejectsMinGreaterThanMax(t *testing.T) {
	doc := Default()
	doc.LocationNodeTypes[0].ConfigurationFields = append(doc.LocationNodeTypes[0].ConfigurationFields,
		&core.FieldSchema{ID: "broken", Label: "Broken", Type: core.FieldNumber,
			Validation: &core.FieldValidation{Min: f64(10), Max: f64(1)}})
	assert.Error(t, Validate(doc))
}

func TestValidateRejectsUnknownCompatibleLocationType(t *testing.T) {
	doc := Default()
	doc.LocationTaskTypes[0].CompatibleLocationTypes = append(
		doc.LocationTaskTypes[0].CompatibleLocationTypes, "phantom_zone")
	assert.Error(t, Validate(doc))
}

func TestValidateRejectsDuplicateFieldIDs(t *testing.T) {
	doc := Default()
	fields := doc.LocationNodeTypes[0].ConfigurationFields
	doc.LocationNodeTypes[0].ConfigurationFields = append(fields,
		&core.FieldSchema{ID: fields[0].ID, Label: "Dup", Type: core.FieldText})
	assert.Error(t, Validate(doc))
}

func TestValidateNilDocument(t *testing.T) {
	assert.Error(t, Validate(nil))
}
