package internal

import (
	"time"

	"shipops-server/internal/operations/domain"
)

type DocumentResponse struct {
	ID           string `json:"id"`
	ShipmentID   string `json:"shipment_id"`
	StepID       string `json:"step_id,omitempty"`
	DocumentType string `json:"document_type"`
	FileName     string `json:"file_name"`
	Size         int64  `json:"size"`
	CreatedAt    string `json:"created_at"`
}

func FromDocument(value domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:           value.ID.String(),
		ShipmentID:   value.ShipmentID.String(),
		StepID:       value.StepID.String(),
		DocumentType: value.DocumentType,
		FileName:     value.FileName,
		Size:         value.Size,
		CreatedAt:    value.CreatedAt.Time.Format(time.RFC3339),
	}
}
