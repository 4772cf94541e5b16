package avro

import (
	"encoding/json"
	"time"

	"shipops-server/internal/operations/domain"
)

// Avro-compatible message structs published to the event topics. Nested
// structures (schemas, value trees, global values) travel as JSON strings so
// the Avro schemas stay flat.

// AvroStep represents a step state change event.
type AvroStep struct {
	ID         string    `avro:"id" json:"id"`
	Version    int64     `avro:"version" json:"version"`
	ShipmentID string    `avro:"shipment_id" json:"shipment_id"`
	Name       string    `avro:"name" json:"name"`
	Status     string    `avro:"status" json:"status"`
	ValuesJSON string    `avro:"values_json" json:"values_json"`
	Notes      string    `avro:"notes" json:"notes"`
	CreatedAt  time.Time `avro:"created_at" json:"created_at"`
	UpdatedAt  time.Time `avro:"updated_at" json:"updated_at"`
}

// AvroDocument represents a registered document event.
type AvroDocument struct {
	ID           string    `avro:"id" json:"id"`
	Version      int64     `avro:"version" json:"version"`
	ShipmentID   string    `avro:"shipment_id" json:"shipment_id"`
	StepID       string    `avro:"step_id" json:"step_id"`
	DocumentType string    `avro:"document_type" json:"document_type"`
	FileName     string    `avro:"file_name" json:"file_name"`
	Size         int64     `avro:"size" json:"size"`
	BlobRef      string    `avro:"blob_ref" json:"blob_ref"`
	CreatedAt    time.Time `avro:"created_at" json:"created_at"`
}

// AvroShipment represents a shipment state change event, including the
// current global variable values.
type AvroShipment struct {
	ID               string    `avro:"id" json:"id"`
	Version          int64     `avro:"version" json:"version"`
	Reference        string    `avro:"reference" json:"reference"`
	TemplateID       string    `avro:"template_id" json:"template_id"`
	GlobalValuesJSON string    `avro:"global_values_json" json:"global_values_json"`
	CreatedAt        time.Time `avro:"created_at" json:"created_at"`
	UpdatedAt        time.Time `avro:"updated_at" json:"updated_at"`
}

// AvroGoodsAllocation represents one goods allocation taken by a completed
// step.
type AvroGoodsAllocation struct {
	ShipmentGoodID int64     `avro:"shipment_good_id" json:"shipment_good_id"`
	ShipmentID     string    `avro:"shipment_id" json:"shipment_id"`
	StepID         string    `avro:"step_id" json:"step_id"`
	TakenQuantity  int64     `avro:"taken_quantity" json:"taken_quantity"`
	CreatedAt      time.Time `avro:"created_at" json:"created_at"`
}

// ToAvroStep converts a domain.Step to an AvroStep for serialization.
func ToAvroStep(step domain.Step) *AvroStep {
	values, _ := step.Values.Marshal()
	return &AvroStep{
		ID:         string(step.ID),
		Version:    int64(step.Version),
		ShipmentID: string(step.ShipmentID),
		Name:       step.Name,
		Status:     string(step.Status),
		ValuesJSON: string(values),
		Notes:      step.Notes,
		CreatedAt:  step.CreatedAt.Time,
		UpdatedAt:  step.UpdatedAt.Time,
	}
}

// ToAvroDocument converts a domain.Document to an AvroDocument.
func ToAvroDocument(doc domain.Document) *AvroDocument {
	return &AvroDocument{
		ID:           string(doc.ID),
		Version:      int64(doc.Version),
		ShipmentID:   string(doc.ShipmentID),
		StepID:       string(doc.StepID),
		DocumentType: doc.DocumentType,
		FileName:     doc.FileName,
		Size:         doc.Size,
		BlobRef:      doc.BlobRef,
		CreatedAt:    doc.CreatedAt.Time,
	}
}

// ToAvroShipment converts a domain.Shipment to an AvroShipment.
func ToAvroShipment(shipment domain.Shipment) *AvroShipment {
	globals, _ := json.Marshal(shipment.GlobalValues)
	return &AvroShipment{
		ID:               string(shipment.ID),
		Version:          int64(shipment.Version),
		Reference:        shipment.Reference,
		TemplateID:       string(shipment.TemplateID),
		GlobalValuesJSON: string(globals),
		CreatedAt:        shipment.CreatedAt.Time,
		UpdatedAt:        shipment.UpdatedAt.Time,
	}
}

// ToAvroGoodsAllocation converts one allocation entry taken by a step.
func ToAvroGoodsAllocation(shipmentID, stepID string, goodID, quantity int64, at time.Time) *AvroGoodsAllocation {
	return &AvroGoodsAllocation{
		ShipmentGoodID: goodID,
		ShipmentID:     shipmentID,
		StepID:         stepID,
		TakenQuantity:  quantity,
		CreatedAt:      at,
	}
}
