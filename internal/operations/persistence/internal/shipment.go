package internal

import (
	"encoding/json"
	"time"

	"shipops-server/internal/infra/utils"
	"shipops-server/internal/operations/domain"
)

type Shipment struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Reference    string    `json:"reference" gorm:"uniqueIndex"`
	TemplateID   string    `json:"template_id"`
	GlobalValues string    `json:"global_values"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Shipment) TableName() string {
	return "shipments"
}

func (s Shipment) ToDomain() domain.Shipment {
	shipment := domain.Shipment{
		ID:           domain.ID(s.ID),
		Reference:    s.Reference,
		TemplateID:   domain.ID(s.TemplateID),
		GlobalValues: map[string]string{},
		Version:      domain.Version(s.Version),
		CreatedAt:    utils.Time{Time: s.CreatedAt},
		UpdatedAt:    utils.Time{Time: s.UpdatedAt},
	}

	var globals map[string]string
	if err := json.Unmarshal([]byte(s.GlobalValues), &globals); err == nil && globals != nil {
		shipment.GlobalValues = globals
	}

	return shipment
}

func FromShipment(value domain.Shipment) Shipment {
	globals, _ := json.Marshal(value.GlobalValues)

	return Shipment{
		ID:           string(value.ID),
		Reference:    value.Reference,
		TemplateID:   string(value.TemplateID),
		GlobalValues: string(globals),
		Version:      int64(value.Version),
		CreatedAt:    value.CreatedAt.Time,
		UpdatedAt:    value.UpdatedAt.Time,
	}
}
