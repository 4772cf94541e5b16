package avro

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"shipops-server/internal/infra/cache"

	"github.com/linkedin/goavro/v2"
	"github.com/riferrei/srclient"
)

const (
	_defaultSchemaCacheTTL = 5 * time.Minute
	_defaultCodecCacheTTL  = 5 * time.Minute
)

// SchemaRegistry is the slice of the confluent registry client the codec
// needs, kept as an interface so tests can stub it.
type SchemaRegistry interface {
	GetLatestSchema(subject string) (*srclient.Schema, error)
	CreateSchema(subject string, schema string, schemaType srclient.SchemaType, references ...srclient.Reference) (*srclient.Schema, error)
	GetSchema(schemaID int) (*srclient.Schema, error)
}

// ConfluentAvroCodec implements the goka codec interface using the Confluent
// wire format (magic byte + schema id + avro binary) backed by a schema
// registry. Unregistered subjects are created from the static schemas on
// first publish.
type ConfluentAvroCodec struct {
	prototype      any
	schemaRegistry SchemaRegistry
	subjectSuffix  string
	schemaCache    cache.Cache
	codecCache     cache.Cache
}

func NewConfluentAvroCodec(prototype any, schemaRegistryURL string) (*ConfluentAvroCodec, error) {
	registry := srclient.NewSchemaRegistryClient(schemaRegistryURL)
	return NewConfluentAvroCodecWithRegistry(prototype, registry)
}

func NewConfluentAvroCodecWithRegistry(prototype any, registry SchemaRegistry) (*ConfluentAvroCodec, error) {
	schemaCache, err := cache.New(cache.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("creating schema cache: %w", err)
	}

	codecCache, err := cache.New(cache.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("creating codec cache: %w", err)
	}

	return &ConfluentAvroCodec{
		prototype:      prototype,
		schemaRegistry: registry,
		subjectSuffix:  "-value",
		schemaCache:    schemaCache,
		codecCache:     codecCache,
	}, nil
}

// schemaNameFor maps a message type to its registry subject base name.
func (c *ConfluentAvroCodec) schemaNameFor(message any) (string, error) {
	switch typeName(message) {
	case "Step", "AvroStep":
		return "shipment_steps", nil
	case "Document", "AvroDocument":
		return "shipment_documents", nil
	case "Shipment", "AvroShipment":
		return "shipments", nil
	case "GoodsAllocation", "AvroGoodsAllocation":
		return "goods_allocations", nil
	default:
		return "", fmt.Errorf("no avro schema found for message type: %s", typeName(message))
	}
}

func staticSchemaFor(message any) (string, error) {
	switch typeName(message) {
	case "Step", "AvroStep":
		return stepSchema, nil
	case "Document", "AvroDocument":
		return documentSchema, nil
	case "Shipment", "AvroShipment":
		return shipmentSchema, nil
	case "GoodsAllocation", "AvroGoodsAllocation":
		return goodsAllocationSchema, nil
	default:
		return "", fmt.Errorf("no static avro schema for message type: %s", typeName(message))
	}
}

// getOrRegisterSchemaID resolves the registry schema id for the subject,
// registering the static schema when the subject does not exist yet.
func (c *ConfluentAvroCodec) getOrRegisterSchemaID(message any) (int, error) {
	schemaName, err := c.schemaNameFor(message)
	if err != nil {
		return 0, err
	}
	subject := schemaName + c.subjectSuffix

	ctx := context.Background()
	if cached, found := c.schemaCache.Get(ctx, subject); found {
		if id, ok := cached.(int); ok {
			return id, nil
		}
	}

	registered, err := c.schemaRegistry.GetLatestSchema(subject)
	if err == nil && registered != nil {
		c.schemaCache.Set(ctx, subject, registered.ID(), _defaultSchemaCacheTTL)
		return registered.ID(), nil
	}

	schema, err := staticSchemaFor(message)
	if err != nil {
		return 0, err
	}

	created, err := c.schemaRegistry.CreateSchema(subject, schema, srclient.Avro)
	if err != nil {
		return 0, fmt.Errorf("registering schema for subject %s: %w", subject, err)
	}

	c.schemaCache.Set(ctx, subject, created.ID(), _defaultSchemaCacheTTL)
	return created.ID(), nil
}

func (c *ConfluentAvroCodec) getCodecByID(schemaID int) (*goavro.Codec, error) {
	ctx := context.Background()
	key := fmt.Sprintf("schema_%d", schemaID)
	if cached, found := c.codecCache.Get(ctx, key); found {
		if codec, ok := cached.(*goavro.Codec); ok {
			return codec, nil
		}
	}

	schema, err := c.schemaRegistry.GetSchema(schemaID)
	if err != nil {
		return nil, fmt.Errorf("fetching schema %d: %w", schemaID, err)
	}

	codec, err := goavro.NewCodec(schema.Schema())
	if err != nil {
		return nil, fmt.Errorf("building codec for schema %d: %w", schemaID, err)
	}

	c.codecCache.Set(ctx, key, codec, _defaultCodecCacheTTL)
	return codec, nil
}

// Encode serializes the message in the Confluent wire format.
func (c *ConfluentAvroCodec) Encode(value any) ([]byte, error) {
	schemaID, err := c.getOrRegisterSchemaID(value)
	if err != nil {
		return nil, err
	}

	codec, err := c.getCodecByID(schemaID)
	if err != nil {
		return nil, err
	}

	native, err := nativeFromMessage(value)
	if err != nil {
		return nil, err
	}

	payload, err := codec.BinaryFromNative(nil, native)
	if err != nil {
		return nil, fmt.Errorf("encoding avro payload: %w", err)
	}

	out := make([]byte, 0, len(payload)+5)
	out = append(out, 0)
	out = binary.BigEndian.AppendUint32(out, uint32(schemaID))
	out = append(out, payload...)
	return out, nil
}

// Decode deserializes a Confluent wire format message into a new instance of
// the codec's prototype type.
func (c *ConfluentAvroCodec) Decode(data []byte) (any, error) {
	if len(data) < 5 || data[0] != 0 {
		return nil, fmt.Errorf("invalid confluent wire format message")
	}

	schemaID := int(binary.BigEndian.Uint32(data[1:5]))
	codec, err := c.getCodecByID(schemaID)
	if err != nil {
		return nil, err
	}

	native, _, err := codec.NativeFromBinary(data[5:])
	if err != nil {
		return nil, fmt.Errorf("decoding avro payload: %w", err)
	}

	return c.messageFromNative(native)
}

// nativeFromMessage builds the goavro native representation. Timestamps stay
// as time.Time so goavro maps them onto the timestamp-millis logical type.
func nativeFromMessage(value any) (map[string]any, error) {
	switch m := messageValue(value).(type) {
	case AvroStep:
		return map[string]any{
			"id":          m.ID,
			"version":     m.Version,
			"shipment_id": m.ShipmentID,
			"name":        m.Name,
			"status":      m.Status,
			"values_json": m.ValuesJSON,
			"notes":       m.Notes,
			"created_at":  m.CreatedAt,
			"updated_at":  m.UpdatedAt,
		}, nil
	case AvroDocument:
		return map[string]any{
			"id":            m.ID,
			"version":       m.Version,
			"shipment_id":   m.ShipmentID,
			"step_id":       m.StepID,
			"document_type": m.DocumentType,
			"file_name":     m.FileName,
			"size":          m.Size,
			"blob_ref":      m.BlobRef,
			"created_at":    m.CreatedAt,
		}, nil
	case AvroShipment:
		return map[string]any{
			"id":                 m.ID,
			"version":            m.Version,
			"reference":          m.Reference,
			"template_id":        m.TemplateID,
			"global_values_json": m.GlobalValuesJSON,
			"created_at":         m.CreatedAt,
			"updated_at":         m.UpdatedAt,
		}, nil
	case AvroGoodsAllocation:
		return map[string]any{
			"shipment_good_id": m.ShipmentGoodID,
			"shipment_id":      m.ShipmentID,
			"step_id":          m.StepID,
			"taken_quantity":   m.TakenQuantity,
			"created_at":       m.CreatedAt,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported message type: %T", value)
	}
}

func messageValue(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr && !v.IsNil() {
		return v.Elem().Interface()
	}
	return value
}

// messageFromNative converts the decoded native map back into the prototype
// struct via JSON. goavro renders timestamp-millis values as time.Time, which
// round-trips through RFC3339.
func (c *ConfluentAvroCodec) messageFromNative(native any) (any, error) {
	raw, err := json.Marshal(native)
	if err != nil {
		return nil, fmt.Errorf("marshaling native value: %w", err)
	}

	t := reflect.TypeOf(c.prototype)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	out := reflect.New(t).Interface()

	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("unmarshaling into %s: %w", t.Name(), err)
	}

	return out, nil
}
