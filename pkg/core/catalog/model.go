package catalog

// FieldType enumerates the input kinds a configuration field can take.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldNumber      FieldType = "number"
	FieldDropdown    FieldType = "dropdown"
	FieldCheckbox    FieldType = "checkbox"
	FieldTextarea    FieldType = "textarea"
	FieldMultiselect FieldType = "multiselect"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldDropdown, FieldCheckbox, FieldTextarea, FieldMultiselect:
		return true
	}
	return false
}

// NeedsOptions reports whether the field type only makes sense with a
// non-empty option list.
func (t FieldType) NeedsOptions() bool {
	return t == FieldDropdown || t == FieldMultiselect
}

type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldValidation constrains numeric range or string shape. All parts
// are optional.
type FieldValidation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
}

// FieldSchema declares one configurable property. Pure data: rendering
// and validation live in pkg/core/form.
type FieldSchema struct {
	ID           string           `json:"id"`
	Label        string           `json:"label"`
	Type         FieldType        `json:"type"`
	Required     bool             `json:"required"`
	DefaultValue any              `json:"defaultValue,omitempty"`
	Placeholder  string           `json:"placeholder,omitempty"`
	Description  string           `json:"description,omitempty"`
	Explainer    string           `json:"explainer,omitempty"`
	Options      []FieldOption    `json:"options,omitempty"`
	Validation   *FieldValidation `json:"validation,omitempty"`
	Group        string           `json:"group,omitempty"`
}

// LocationType describes a kind of physical/operational area.
type LocationType struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	Icon                string         `json:"icon"`
	Color               string         `json:"color"`
	BgColor             string         `json:"bgColor"`
	BorderColor         string         `json:"borderColor"`
	Category            string         `json:"category"`
	ConfigurationFields []*FieldSchema `json:"configurationFields"`
}

// MovementTaskType describes a transfer operation between locations.
type MovementTaskType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Category    string `json:"category"`
	// AllowMultiple permits more than one edge of this type between
	// the same source/target pair.
	AllowMultiple       bool           `json:"allowMultiple"`
	ConfigurationFields []*FieldSchema `json:"configurationFields"`
}

// LocationTaskType describes an operational sub-step attachable to a
// location whose type id appears in CompatibleLocationTypes.
type LocationTaskType struct {
	ID                      string         `json:"id"`
	Name                    string         `json:"name"`
	Description             string         `json:"description"`
	Icon                    string         `json:"icon"`
	Color                   string         `json:"color"`
	BgColor                 string         `json:"bgColor"`
	Category                string         `json:"category"`
	CompatibleLocationTypes []string       `json:"compatibleLocationTypes"`
	ConfigurationFields     []*FieldSchema `json:"configurationFields"`
}

// FrameworkConfig is the full catalog document, loaded once per
// process and read-only afterwards.
type FrameworkConfig struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`

	LocationNodeTypes []*LocationType     `json:"locationNodeTypes"`
	MovementTaskTypes []*MovementTaskType `json:"movementTaskTypes"`
	LocationTaskTypes []*LocationTaskType `json:"locationTaskTypes"`

	// GlobalTemplateFields are appended after the type-specific fields
	// of every movement task and location task form.
	GlobalTemplateFields []*FieldSchema `json:"globalTemplateFields,omitempty"`
}
