package domain

import (
	"errors"
	"time"

	"shipops-server/internal/infra/utils"
)

// Document is a stored file registered against a shipment. Its DocumentType
// ties it back to the field (or checklist item) it satisfies: the step id
// plus the encoded field path.
type Document struct {
	ID           ID
	ShipmentID   ID
	StepID       ID
	DocumentType string
	FileName     string
	Size         int64
	BlobRef      string
	Version      Version
	CreatedAt    utils.Time
}

func NewDocumentBuilder() *documentBuilder {
	return &documentBuilder{}
}

type documentBuilder struct {
	actions []documentHandler
}

type documentHandler func(v *Document) error

func (b *documentBuilder) WithShipmentID(value ID) *documentBuilder {
	b.actions = append(b.actions, func(d *Document) error {
		d.ShipmentID = value
		return nil
	})
	return b
}

func (b *documentBuilder) WithStepID(value ID) *documentBuilder {
	b.actions = append(b.actions, func(d *Document) error {
		d.StepID = value
		return nil
	})
	return b
}

func (b *documentBuilder) WithDocumentType(value string) *documentBuilder {
	b.actions = append(b.actions, func(d *Document) error {
		d.DocumentType = value
		return nil
	})
	return b
}

func (b *documentBuilder) WithFileName(value string) *documentBuilder {
	b.actions = append(b.actions, func(d *Document) error {
		d.FileName = value
		return nil
	})
	return b
}

func (b *documentBuilder) WithSize(value int64) *documentBuilder {
	b.actions = append(b.actions, func(d *Document) error {
		d.Size = value
		return nil
	})
	return b
}

func (b *documentBuilder) WithBlobRef(value string) *documentBuilder {
	b.actions = append(b.actions, func(d *Document) error {
		d.BlobRef = value
		return nil
	})
	return b
}

func (b *documentBuilder) Build() (Document, error) {
	result := Document{
		ID:        ID(utils.GenerateUUID()),
		Version:   1,
		CreatedAt: utils.Time{Time: time.Now()},
	}

	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Document{}, err
		}
	}

	if result.ShipmentID == "" {
		return Document{}, errors.New("shipment is required")
	}

	if result.DocumentType == "" {
		return Document{}, errors.New("document type is required")
	}

	return result, nil
}

// ShipmentGood is one line of a shipment's cargo manifest. Goods carry
// numeric ids because shipment_goods entries reference them with
// "good-<id>" keys.
type ShipmentGood struct {
	ID                int64
	ShipmentID        ID
	Description       string
	Quantity          int64
	AllocatedQuantity int64
}

func (g ShipmentGood) Remaining() int64 {
	return g.Quantity - g.AllocatedQuantity
}
