package internal

import (
	"time"

	"shipops-server/internal/infra/utils"
	"shipops-server/internal/operations/domain"
)

type Document struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	ShipmentID   string    `json:"shipment_id" gorm:"index"`
	StepID       string    `json:"step_id" gorm:"index"`
	DocumentType string    `json:"document_type" gorm:"index"`
	FileName     string    `json:"file_name"`
	Size         int64     `json:"size"`
	BlobRef      string    `json:"blob_ref"`
	Content      []byte    `json:"-"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Document) TableName() string {
	return "shipment_documents"
}

func (d Document) ToDomain() domain.Document {
	return domain.Document{
		ID:           domain.ID(d.ID),
		ShipmentID:   domain.ID(d.ShipmentID),
		StepID:       domain.ID(d.StepID),
		DocumentType: d.DocumentType,
		FileName:     d.FileName,
		Size:         d.Size,
		BlobRef:      d.BlobRef,
		Version:      domain.Version(d.Version),
		CreatedAt:    utils.Time{Time: d.CreatedAt},
	}
}

func FromDocument(value domain.Document, content []byte) Document {
	return Document{
		ID:           string(value.ID),
		ShipmentID:   string(value.ShipmentID),
		StepID:       string(value.StepID),
		DocumentType: value.DocumentType,
		FileName:     value.FileName,
		Size:         value.Size,
		BlobRef:      value.BlobRef,
		Content:      content,
		Version:      int64(value.Version),
		CreatedAt:    value.CreatedAt.Time,
	}
}
