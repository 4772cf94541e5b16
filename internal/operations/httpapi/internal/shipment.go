package internal

import (
	"time"

	"shipops-server/internal/operations/domain"
)

type ShipmentCreateRequest struct {
	Reference  string `json:"reference"`
	TemplateID string `json:"template_id"`
}

type ShipmentResponse struct {
	ID           string            `json:"id"`
	Reference    string            `json:"reference"`
	TemplateID   string            `json:"template_id,omitempty"`
	GlobalValues map[string]string `json:"global_values"`
	Version      int64             `json:"version"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

func FromShipment(value domain.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:           value.ID.String(),
		Reference:    value.Reference,
		TemplateID:   value.TemplateID.String(),
		GlobalValues: value.GlobalValues,
		Version:      int64(value.Version),
		CreatedAt:    value.CreatedAt.Time.Format(time.RFC3339),
		UpdatedAt:    value.UpdatedAt.Time.Format(time.RFC3339),
	}
}
