package catalog

// Service is the read-only lookup surface over a loaded
// FrameworkConfig. A lookup miss is an ordinary condition: callers
// treat it as "zero configuration fields", never as an error.
type Service interface {
	// Config returns the loaded document.
	Config() *FrameworkConfig
	// LocationType resolves a location type id.
	LocationType(id string) (*LocationType, bool)
	// MovementTaskType resolves a movement task type id.
	MovementTaskType(id string) (*MovementTaskType, bool)
	// LocationTaskType resolves a location task type id.
	LocationTaskType(id string) (*LocationTaskType, bool)
	// TemplateFields returns the global template fields, possibly empty.
	TemplateFields() []*FieldSchema
	// CompatibleTaskTypes lists the location task types attachable to
	// the given location type, skipping ids in exclude.
	CompatibleTaskTypes(locationTypeID string, exclude []string) []*LocationTaskType
}
