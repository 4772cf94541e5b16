package avro

import (
	"fmt"
	"reflect"

	"github.com/hamba/avro/v2"
)

// AvroCodec implements the goka codec interface using static Avro schemas.
type AvroCodec struct {
	prototype any
	schemas   map[string]avro.Schema
}

// Static Avro schemas for all message types
const (
	stepSchema = `{
		"type": "record",
		"name": "Step",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "version", "type": "long"},
			{"name": "shipment_id", "type": "string"},
			{"name": "name", "type": "string"},
			{"name": "status", "type": "string"},
			{"name": "values_json", "type": "string"},
			{"name": "notes", "type": "string"},
			{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
		]
	}`

	documentSchema = `{
		"type": "record",
		"name": "Document",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "version", "type": "long"},
			{"name": "shipment_id", "type": "string"},
			{"name": "step_id", "type": "string"},
			{"name": "document_type", "type": "string"},
			{"name": "file_name", "type": "string"},
			{"name": "size", "type": "long"},
			{"name": "blob_ref", "type": "string"},
			{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
		]
	}`

	shipmentSchema = `{
		"type": "record",
		"name": "Shipment",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "version", "type": "long"},
			{"name": "reference", "type": "string"},
			{"name": "template_id", "type": "string"},
			{"name": "global_values_json", "type": "string"},
			{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
		]
	}`

	goodsAllocationSchema = `{
		"type": "record",
		"name": "GoodsAllocation",
		"fields": [
			{"name": "shipment_good_id", "type": "long"},
			{"name": "shipment_id", "type": "string"},
			{"name": "step_id", "type": "string"},
			{"name": "taken_quantity", "type": "long"},
			{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
		]
	}`
)

// NewAvroCodec creates a codec bound to the prototype's message type.
func NewAvroCodec(prototype any) *AvroCodec {
	schemas := make(map[string]avro.Schema)

	stepAvroSchema, _ := avro.Parse(stepSchema)
	documentAvroSchema, _ := avro.Parse(documentSchema)
	shipmentAvroSchema, _ := avro.Parse(shipmentSchema)
	goodsAllocationAvroSchema, _ := avro.Parse(goodsAllocationSchema)

	schemas["Step"] = stepAvroSchema
	schemas["AvroStep"] = stepAvroSchema
	schemas["Document"] = documentAvroSchema
	schemas["AvroDocument"] = documentAvroSchema
	schemas["Shipment"] = shipmentAvroSchema
	schemas["AvroShipment"] = shipmentAvroSchema
	schemas["GoodsAllocation"] = goodsAllocationAvroSchema
	schemas["AvroGoodsAllocation"] = goodsAllocationAvroSchema

	return &AvroCodec{
		prototype: prototype,
		schemas:   schemas,
	}
}

func (c *AvroCodec) schemaFor(value any) (avro.Schema, error) {
	name := typeName(value)
	schema, ok := c.schemas[name]
	if !ok {
		return nil, fmt.Errorf("no avro schema registered for message type %s", name)
	}

	return schema, nil
}

func typeName(value any) string {
	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func (c *AvroCodec) Encode(value any) ([]byte, error) {
	schema, err := c.schemaFor(value)
	if err != nil {
		return nil, err
	}

	data, err := avro.Marshal(schema, value)
	if err != nil {
		return nil, fmt.Errorf("avro marshal: %w", err)
	}

	return data, nil
}

func (c *AvroCodec) Decode(data []byte) (any, error) {
	schema, err := c.schemaFor(c.prototype)
	if err != nil {
		return nil, err
	}

	t := reflect.TypeOf(c.prototype)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	out := reflect.New(t).Interface()

	if err := avro.Unmarshal(schema, data, out); err != nil {
		return nil, fmt.Errorf("avro unmarshal: %w", err)
	}

	return out, nil
}
