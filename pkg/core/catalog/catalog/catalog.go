package catalog

import (
	core "github.com/openwms/procflow/pkg/core/catalog"
)

type catalogImpl struct {
	conf *core.FrameworkConfig

	locationTypes     map[string]*core.LocationType
	movementTaskTypes map[string]*core.MovementTaskType
	locationTaskTypes map[string]*core.LocationTaskType
}

// New indexes a validated FrameworkConfig for O(1) lookups. The
// document must already have passed Validate.
func New(conf *core.FrameworkConfig) core.Service {
	c := &catalogImpl{
		conf:              conf,
		locationTypes:     make(map[string]*core.LocationType, len(conf.LocationNodeTypes)),
		movementTaskTypes: make(map[string]*core.MovementTaskType, len(conf.MovementTaskTypes)),
		locationTaskTypes: make(map[string]*core.LocationTaskType, len(conf.LocationTaskTypes)),
	}
	for _, t := range conf.LocationNodeTypes {
		c.locationTypes[t.ID] = t
	}
	for _, t := range conf.MovementTaskTypes {
		c.movementTaskTypes[t.ID] = t
	}
	for _, t := range conf.LocationTaskTypes {
		c.locationTaskTypes[t.ID] = t
	}
	return c
}

func (c *catalogImpl) Config() *core.FrameworkConfig {
	return c.conf
}

func (c *catalogImpl) LocationType(id string) (*core.LocationType, bool) {
	t, ok := c.locationTypes[id]
	return t, ok
}

func (c *catalogImpl) MovementTaskType(id string) (*core.MovementTaskType, bool) {
	t, ok := c.movementTaskTypes[id]
	return t, ok
}

func (c *catalogImpl) LocationTaskType(id string) (*core.LocationTaskType, bool) {
	t, ok := c.locationTaskTypes[id]
	return t, ok
}

func (c *catalogImpl) TemplateFields() []*core.FieldSchema {
	return c.conf.GlobalTemplateFields
}

func (c *catalogImpl) CompatibleTaskTypes(locationTypeID string, exclude []string) []*core.LocationTaskType {
	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	// Preserve document order so the node library renders stably.
	out := make([]*core.LocationTaskType, 0, len(c.conf.LocationTaskTypes))
	for _, t := range c.conf.LocationTaskTypes {
		if _, skip := excluded[t.ID]; skip {
			continue
		}
		for _, compat := range t.CompatibleLocationTypes {
			if compat == locationTypeID {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
