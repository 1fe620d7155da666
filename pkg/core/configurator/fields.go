package configurator

import (
	catalog "github.com/openwms/procflow/pkg/core/catalog"
	"github.com/openwms/procflow/pkg/core/graph"
)

func f64(v float64) *float64 { return &v }

// FieldsForType resolves the configuration schema for an element kind
// and catalog type id, without touching any session state. Movement
// and location task schemas carry the catalog's global template fields
// appended after their own.
func FieldsForType(cat catalog.Service, kind graph.SelectionKind, typeID string) []*catalog.FieldSchema {
	switch kind {
	case graph.SelectLocation:
		if lt, ok := cat.LocationType(typeID); ok {
			return lt.ConfigurationFields
		}
	case graph.SelectMovement:
		if mt, ok := cat.MovementTaskType(typeID); ok {
			return appendTemplateFields(cat, mt.ConfigurationFields)
		}
	case graph.SelectLocationTask:
		if tt, ok := cat.LocationTaskType(typeID); ok {
			return appendTemplateFields(cat, tt.ConfigurationFields)
		}
	case graph.SelectTaskSequence:
		return sequenceFields()
	}
	return nil
}

func appendTemplateFields(cat catalog.Service, fields []*catalog.FieldSchema) []*catalog.FieldSchema {
	tpl := cat.TemplateFields()
	if len(tpl) == 0 {
		return fields
	}
	out := make([]*catalog.FieldSchema, 0, len(fields)+len(tpl))
	out = append(out, fields...)
	out = append(out, tpl...)
	return out
}

// sequenceFields is the built-in schema for task sequence containers.
// Sequences are not catalog entities, so their form is fixed.
func sequenceFields() []*catalog.FieldSchema {
	return []*catalog.FieldSchema{
		{
			ID: "sequence_name", Label: "Sequence Name", Type: catalog.FieldText,
			Required: true, Placeholder: "e.g., Inbound QC Sequence",
		},
		{
			ID: "priority", Label: "Priority", Type: catalog.FieldDropdown,
			Required: true, DefaultValue: "medium",
			Options: []catalog.FieldOption{
				{Value: "high", Label: "High"},
				{Value: "medium", Label: "Medium"},
				{Value: "low", Label: "Low"},
			},
		},
		{
			ID: "parallel_execution", Label: "Parallel Execution", Type: catalog.FieldCheckbox,
			Explainer: "Run tasks in this sequence concurrently",
		},
		{
			ID: "timeout_minutes", Label: "Timeout (minutes)", Type: catalog.FieldNumber,
			Validation: &catalog.FieldValidation{Min: f64(0)},
		},
	}
}
