package form

import (
	catalog "github.com/openwms/procflow/pkg/core/catalog"
)

// Values is a configuration value map keyed by field id.
type Values map[string]any

// FieldErrors maps offending field ids to their validation message.
// An empty map means the submission is valid.
type FieldErrors map[string]string

func (e FieldErrors) Ok() bool { return len(e) == 0 }

// Control is one renderable input: the field schema plus the value the
// client should display.
type Control struct {
	Field *catalog.FieldSchema `json:"field"`
	Value any                  `json:"value"`
	// Explainer is the checkbox caption; falls back to a generic one.
	Explainer string `json:"explainer,omitempty"`
}

// Section groups controls. The primary section is always expanded;
// named sections start collapsed and toggle independently.
type Section struct {
	Name      string     `json:"name"`
	Title     string     `json:"title"`
	Primary   bool       `json:"primary"`
	Collapsed bool       `json:"collapsed"`
	Controls  []*Control `json:"controls"`
}

// Form is the rendered description handed to the client.
type Form struct {
	Sections []*Section `json:"sections"`
}

const primaryGroup = "primary"

const defaultExplainer = "Enable this option"
