package configurator

import (
	catalog "github.com/openwms/procflow/pkg/core/catalog"
	"github.com/openwms/procflow/pkg/core/form"
	"github.com/openwms/procflow/pkg/core/graph"
)

// Configurator drives the element configuration modal for one editing
// session: it resolves the field list for whatever is selected, renders
// the form with current values, and routes a valid submission back into
// the graph store.
type Configurator struct {
	catalog catalog.Service
	store   *graph.Store
}

func New(cat catalog.Service, store *graph.Store) *Configurator {
	return &Configurator{catalog: cat, store: store}
}

// ResolveFields returns the schema list for a selection. Movement and
// location task elements additionally carry the catalog's global
// template fields; task sequences use a fixed built-in list. An
// unresolvable selection yields no fields, never an error.
func (c *Configurator) ResolveFields(sel graph.Selection) []*catalog.FieldSchema {
	switch sel.Kind {
	case graph.SelectLocation:
		if node, ok := c.store.LocationNode(sel.ID); ok {
			return FieldsForType(c.catalog, sel.Kind, node.LocationTypeID)
		}
	case graph.SelectMovement:
		if edge, ok := c.store.MovementEdge(sel.ID); ok {
			return FieldsForType(c.catalog, sel.Kind, edge.TaskTypeID)
		}
	case graph.SelectLocationTask:
		if task, _, ok := c.store.LocationTask(sel.ID); ok {
			return FieldsForType(c.catalog, sel.Kind, task.TaskTypeID)
		}
	case graph.SelectTaskSequence:
		if _, _, ok := c.store.TaskSequence(sel.ID); ok {
			return FieldsForType(c.catalog, sel.Kind, "")
		}
	}
	return nil
}

// CurrentValues reads the selected element's stored configuration.
func (c *Configurator) CurrentValues(sel graph.Selection) form.Values {
	switch sel.Kind {
	case graph.SelectLocation:
		if node, ok := c.store.LocationNode(sel.ID); ok {
			return form.Values(node.Configuration)
		}
	case graph.SelectMovement:
		if edge, ok := c.store.MovementEdge(sel.ID); ok {
			return form.Values(edge.Configuration)
		}
	case graph.SelectLocationTask:
		if task, _, ok := c.store.LocationTask(sel.ID); ok {
			return form.Values(task.Configuration)
		}
	case graph.SelectTaskSequence:
		if seq, _, ok := c.store.TaskSequence(sel.ID); ok {
			return form.Values(seq.Configuration)
		}
	}
	return nil
}

// ElementName returns the display title for the modal header.
func (c *Configurator) ElementName(sel graph.Selection) string {
	switch sel.Kind {
	case graph.SelectLocation:
		if node, ok := c.store.LocationNode(sel.ID); ok {
			return node.Name
		}
	case graph.SelectMovement:
		if edge, ok := c.store.MovementEdge(sel.ID); ok {
			return edge.TaskName
		}
	case graph.SelectLocationTask:
		if task, _, ok := c.store.LocationTask(sel.ID); ok {
			return task.TaskName
		}
	case graph.SelectTaskSequence:
		if seq, _, ok := c.store.TaskSequence(sel.ID); ok {
			if name, ok := seq.Configuration["sequence_name"].(string); ok && name != "" {
				return name
			}
			return "Task Sequence"
		}
	}
	return ""
}

// Render builds the modal form for the current selection.
func (c *Configurator) Render(sel graph.Selection) *form.Form {
	gen := form.NewGenerator(c.ResolveFields(sel))
	return gen.Render(c.CurrentValues(sel))
}

// Submit validates a submission against the selection's schema and, on
// success, persists the sanitized values on the element and closes the
// modal by clearing the selection. Validation failures leave the store
// untouched and report per-field messages.
func (c *Configurator) Submit(sel graph.Selection, values form.Values) form.FieldErrors {
	gen := form.NewGenerator(c.ResolveFields(sel))
	sanitized, errs := gen.Submit(values)
	if !errs.Ok() {
		return errs
	}

	conf := graph.Config(sanitized)
	switch sel.Kind {
	case graph.SelectLocation:
		c.store.UpdateLocationNode(sel.ID, graph.LocationPatch{Configuration: conf})
	case graph.SelectMovement:
		c.store.UpdateMovementEdge(sel.ID, graph.MovementPatch{Configuration: conf})
	case graph.SelectLocationTask:
		c.store.UpdateIndividualTask(sel.ID, conf)
	case graph.SelectTaskSequence:
		c.store.UpdateTaskSequence(sel.ID, graph.SequencePatch{Configuration: conf})
	}
	c.store.ClearSelection()
	return nil
}

// Cancel dismisses the modal without persisting anything.
func (c *Configurator) Cancel() {
	c.store.ClearSelection()
}
