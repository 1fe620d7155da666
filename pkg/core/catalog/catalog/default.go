package catalog

import (
	core "github.com/openwms/procflow/pkg/core/catalog"
)

func f64(v float64) *float64 { return &v }

// Default returns the built-in warehouse process framework. Deployments
// normally override it via CATALOG_PATH or CATALOG_ADDR; the embedded
// copy keeps a fresh checkout runnable.
func Default() *core.FrameworkConfig {
	return &core.FrameworkConfig{
		Name:        "WMS Process Framework",
		Version:     "1.0.0",
		Description: "Configurable warehouse management system process designer",

		LocationNodeTypes: []*core.LocationType{
			{
				ID: "receiving_dock", Name: "Receiving Dock",
				Description: "Incoming goods receiving area",
				Icon:        "🚛", Color: "#10b981", BgColor: "#dcfce7", BorderColor: "#16a34a",
				Category: "Inbound",
				ConfigurationFields: []*core.FieldSchema{
					{ID: "dock_number", Label: "Dock Number", Type: core.FieldText,
						Required: true, Placeholder: "e.g., DOCK-01"},
					{ID: "capacity", Label: "Capacity (pallets)", Type: core.FieldNumber,
						Required: true, DefaultValue: 10,
						Validation: &core.FieldValidation{Min: f64(1), Max: f64(100)}},
					{ID: "operating_hours", Label: "Operating Hours", Type: core.FieldDropdown,
						Required: true, DefaultValue: "24x7",
						Options: []core.FieldOption{
							{Value: "24x7", Label: "24/7"},
							{Value: "business", Label: "Business Hours"},
							{Value: "extended", Label: "Extended Hours"},
						}},
				},
			},
			{
				ID: "staging_area", Name: "Staging Area",
				Description: "Temporary holding area for goods",
				Icon:        "📦", Color: "#3b82f6", BgColor: "#dbeafe", BorderColor: "#2563eb",
				Category: "Inbound",
				ConfigurationFields: []*core.FieldSchema{
					{ID: "area_code", Label: "Area Code", Type: core.FieldText,
						Required: true, Placeholder: "e.g., STAGE-A1"},
					{ID: "max_dwell_time", Label: "Max Dwell Time (hours)", Type: core.FieldNumber,
						Required: true, DefaultValue: 24,
						Validation: &core.FieldValidation{Min: f64(1), Max: f64(168)}},
				},
			},
			{
				ID: "storage_location", Name: "Storage Location",
				Description: "Main storage area for inventory",
				Icon:        "🏪", Color: "#8b5cf6", BgColor: "#ede9fe", BorderColor: "#7c3aed",
				Category: "Storage",
				ConfigurationFields: []*core.FieldSchema{
					{ID: "zone", Label: "Storage Zone", Type: core.FieldText,
						Required: true, Placeholder: "e.g., A1-A5"},
					{ID: "storage_type", Label: "Storage Type", Type: core.FieldDropdown,
						Required: true, DefaultValue: "rack",
						Options: []core.FieldOption{
							{Value: "rack", Label: "Rack Storage"},
							{Value: "bulk", Label: "Bulk Storage"},
							{Value: "floor", Label: "Floor Storage"},
						}},
				},
			},
			{
				ID: "picking_face", Name: "Picking Face",
				Description: "Active picking location",
				Icon:        "✋", Color: "#ef4444", BgColor: "#fee2e2", BorderColor: "#dc2626",
				Category: "Outbound",
				ConfigurationFields: []*core.FieldSchema{
					{ID: "pick_face_id", Label: "Pick Face ID", Type: core.FieldText,
						Required: true, Placeholder: "e.g., PF-01"},
					{ID: "replenishment_trigger", Label: "Replenishment Trigger (%)", Type: core.FieldNumber,
						Required: true, DefaultValue: 20,
						Validation: &core.FieldValidation{Min: f64(1), Max: f64(100)}},
				},
			},
			{
				ID: "shipping_lane", Name: "Shipping Lane",
				Description: "Outbound shipping area",
				Icon:        "🚚", Color: "#06b6d4", BgColor: "#cffafe", BorderColor: "#0891b2",
				Category: "Outbound",
				ConfigurationFields: []*core.FieldSchema{
					{ID: "lane_number", Label: "Lane Number", Type: core.FieldText,
						Required: true, Placeholder: "e.g., SHIP-01"},
					{ID: "carrier_type", Label: "Carrier Type", Type: core.FieldDropdown,
						Required: true, DefaultValue: "ltl",
						Options: []core.FieldOption{
							{Value: "ltl", Label: "LTL"},
							{Value: "ftl", Label: "FTL"},
							{Value: "parcel", Label: "Parcel"},
						}},
				},
			},
		},

		MovementTaskTypes: []*core.MovementTaskType{
			{
				ID: "putaway", Name: "Putaway",
				Description: "Move items from staging to storage",
				Icon:        "➡️", Color: "#8b5cf6", Category: "Inbound Movement",
				AllowMultiple: true,
				ConfigurationFields: []*core.FieldSchema{
					{ID: "putaway_strategy", Label: "Putaway Strategy", Type: core.FieldDropdown,
						Required: true, DefaultValue: "directed",
						Options: []core.FieldOption{
							{Value: "directed", Label: "Directed"},
							{Value: "random", Label: "Random"},
							{Value: "fifo", Label: "FIFO"},
						}},
					{ID: "item_type", Label: "Item Type", Type: core.FieldDropdown,
						Required: true, DefaultValue: "full_case",
						Options: []core.FieldOption{
							{Value: "full_case", Label: "Full Case"},
							{Value: "loose_item", Label: "Loose Item"},
							{Value: "pallet", Label: "Pallet"},
						}},
					{ID: "priority", Label: "Priority Level", Type: core.FieldDropdown,
						Required: true, DefaultValue: "medium",
						Options: []core.FieldOption{
							{Value: "low", Label: "Low"},
							{Value: "medium", Label: "Medium"},
							{Value: "high", Label: "High"},
							{Value: "urgent", Label: "Urgent"},
						}},
				},
			},
			{
				ID: "picking", Name: "Picking",
				Description: "Select items for orders",
				Icon:        "👆", Color: "#ef4444", Category: "Outbound Movement",
				AllowMultiple: true,
				ConfigurationFields: []*core.FieldSchema{
					{ID: "picking_method", Label: "Picking Method", Type: core.FieldDropdown,
						Required: true, DefaultValue: "batch",
						Options: []core.FieldOption{
							{Value: "discrete", Label: "Discrete"},
							{Value: "batch", Label: "Batch"},
							{Value: "zone", Label: "Zone"},
							{Value: "wave", Label: "Wave"},
						}},
					{ID: "picking_technology", Label: "Technology", Type: core.FieldDropdown,
						Required: true, DefaultValue: "rf",
						Options: []core.FieldOption{
							{Value: "paper", Label: "Paper"},
							{Value: "rf", Label: "RF Scanner"},
							{Value: "voice", Label: "Voice"},
							{Value: "light", Label: "Pick to Light"},
						}},
				},
			},
			{
				ID: "replenishment", Name: "Replenishment",
				Description: "Restock picking locations",
				Icon:        "🔄", Color: "#f59e0b", Category: "Internal Movement",
				AllowMultiple: true,
				ConfigurationFields: []*core.FieldSchema{
					{ID: "replenishment_type", Label: "Replenishment Type", Type: core.FieldDropdown,
						Required: true, DefaultValue: "min_max",
						Options: []core.FieldOption{
							{Value: "min_max", Label: "Min/Max"},
							{Value: "demand_based", Label: "Demand Based"},
							{Value: "scheduled", Label: "Scheduled"},
						}},
					{ID: "min_quantity", Label: "Minimum Quantity", Type: core.FieldNumber,
						Required: true, DefaultValue: 10,
						Validation: &core.FieldValidation{Min: f64(1)}},
				},
			},
			{
				ID: "transfer", Name: "Transfer",
				Description: "Move items between locations",
				Icon:        "↔️", Color: "#06b6d4", Category: "Internal Movement",
				AllowMultiple: false,
				ConfigurationFields: []*core.FieldSchema{
					{ID: "transfer_reason", Label: "Transfer Reason", Type: core.FieldDropdown,
						Required: true, DefaultValue: "relocation",
						Options: []core.FieldOption{
							{Value: "relocation", Label: "Relocation"},
							{Value: "consolidation", Label: "Consolidation"},
							{Value: "cycle_count", Label: "Cycle Count"},
						}},
				},
			},
		},

		LocationTaskTypes: []*core.LocationTaskType{
			{
				ID: "receiving", Name: "Receiving",
				Description: "Goods receipt and inspection",
				Icon:        "📥", Color: "#10b981", BgColor: "#dcfce7", Category: "Inbound Task",
				CompatibleLocationTypes: []string{"receiving_dock", "staging_area"},
				ConfigurationFields: []*core.FieldSchema{
					{ID: "quality_check_required", Label: "Quality Check Required",
						Type: core.FieldCheckbox, DefaultValue: true},
					{ID: "expected_grn_pattern", Label: "Expected GRN Pattern", Type: core.FieldText,
						Required: true, DefaultValue: "AUTO-{YYYY}-{###}",
						Placeholder: "Use {YYYY} for year, {###} for sequence"},
					{ID: "tolerance_percent", Label: "Tolerance (%)", Type: core.FieldNumber,
						Required: true, DefaultValue: 5,
						Validation: &core.FieldValidation{Min: f64(0), Max: f64(100)}},
				},
			},
			{
				ID: "loading", Name: "Loading",
				Description: "Load items for shipment",
				Icon:        "📤", Color: "#06b6d4", BgColor: "#cffafe", Category: "Outbound Task",
				CompatibleLocationTypes: []string{"shipping_lane"},
				ConfigurationFields: []*core.FieldSchema{
					{ID: "loading_strategy", Label: "Loading Strategy", Type: core.FieldDropdown,
						Required: true, DefaultValue: "route_based",
						Options: []core.FieldOption{
							{Value: "route_based", Label: "Route Based"},
							{Value: "time_based", Label: "Time Based"},
							{Value: "capacity_based", Label: "Capacity Based"},
						}},
					{ID: "seal_required", Label: "Seal Required",
						Type: core.FieldCheckbox, DefaultValue: true},
				},
			},
			{
				ID: "quality_check", Name: "Quality Check",
				Description: "Quality inspection process",
				Icon:        "🔍", Color: "#f59e0b", BgColor: "#fef3c7", Category: "Quality Task",
				CompatibleLocationTypes: []string{"receiving_dock", "staging_area", "storage_location"},
				ConfigurationFields: []*core.FieldSchema{
					{ID: "inspection_type", Label: "Inspection Type", Type: core.FieldDropdown,
						Required: true, DefaultValue: "visual",
						Options: []core.FieldOption{
							{Value: "visual", Label: "Visual"},
							{Value: "sampling", Label: "Sampling"},
							{Value: "full", Label: "Full Inspection"},
						}},
					{ID: "hold_on_failure", Label: "Hold on Failure",
						Type: core.FieldCheckbox, DefaultValue: true},
				},
			},
			{
				ID: "packing", Name: "Packing",
				Description: "Pack items for shipment",
				Icon:        "📦", Color: "#8b5cf6", BgColor: "#ede9fe", Category: "Outbound Task",
				CompatibleLocationTypes: []string{"staging_area", "shipping_lane"},
				ConfigurationFields: []*core.FieldSchema{
					{ID: "packing_method", Label: "Packing Method", Type: core.FieldDropdown,
						Required: true, DefaultValue: "standard",
						Options: []core.FieldOption{
							{Value: "standard", Label: "Standard"},
							{Value: "fragile", Label: "Fragile"},
							{Value: "hazmat", Label: "Hazmat"},
						}},
					{ID: "label_printing", Label: "Label Printing",
						Type: core.FieldCheckbox, DefaultValue: true},
				},
			},
		},

		GlobalTemplateFields: []*core.FieldSchema{
			{ID: "operator_notes", Label: "Operator Notes", Type: core.FieldTextarea,
				Group: "operational-notes", Placeholder: "Shift handover notes"},
			{ID: "labor_standard_minutes", Label: "Labor Standard (minutes)", Type: core.FieldNumber,
				Group: "operational-notes",
				Validation: &core.FieldValidation{Min: f64(0)}},
		},
	}
}
