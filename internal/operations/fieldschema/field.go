// Package fieldschema implements the step field schema engine: a
// schema-driven evaluator over untyped value trees. It merges form
// submissions, computes missing required fields and documents, resolves
// choice branches, maintains countdown freeze maps, syncs linked global
// variables and extracts goods allocations. Everything in this package is
// pure computation over in-memory snapshots; no I/O happens here.
package fieldschema

import "encoding/json"

type FieldType string

const (
	FieldTypeText          FieldType = "text"
	FieldTypeNumber        FieldType = "number"
	FieldTypeDate          FieldType = "date"
	FieldTypeBoolean       FieldType = "boolean"
	FieldTypeFile          FieldType = "file"
	FieldTypeGroup         FieldType = "group"
	FieldTypeChoice        FieldType = "choice"
	FieldTypeShipmentGoods FieldType = "shipment_goods"
)

// Field is one node of a step field schema. The Type tag selects which of
// the optional attributes are meaningful; unknown types are carried but
// contribute nothing to any evaluation.
type Field struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	Type          FieldType `json:"type"`
	Required      bool      `json:"required,omitempty"`
	LinkToGlobal  string    `json:"link_to_global,omitempty"`
	StopCountdown string    `json:"stop_countdown,omitempty"`
	CountdownDays int       `json:"countdown_days,omitempty"`
	Repeatable    bool      `json:"repeatable,omitempty"`
	Fields        []Field   `json:"fields,omitempty"`
	Options       []Option  `json:"options,omitempty"`
}

// Option is one branch of a choice field.
type Option struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Final   bool    `json:"final,omitempty"`
	Message string  `json:"message,omitempty"`
	Fields  []Field `json:"fields,omitempty"`
}

type Schema []Field

// ParseSchema decodes a stored schema document. Malformed or absent input
// yields an empty schema, never an error.
func ParseSchema(raw []byte) Schema {
	if len(raw) == 0 {
		return nil
	}

	var schema Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil
	}

	return schema
}

// LegacySchema synthesizes a schema from a flat list of required field
// names, one required text field per name. Used for steps predating stored
// JSON schemas.
func LegacySchema(names []string) Schema {
	schema := make(Schema, 0, len(names))
	for _, name := range names {
		schema = append(schema, Field{
			ID:       name,
			Label:    name,
			Type:     FieldTypeText,
			Required: true,
		})
	}

	return schema
}
