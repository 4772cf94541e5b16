package internal

import (
	"time"

	"shipops-server/internal/infra/utils"
	"shipops-server/internal/operations/domain"
)

type ShipmentException struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ShipmentID  string    `json:"shipment_id" gorm:"index"`
	Description string    `json:"description"`
	Blocking    bool      `json:"blocking"`
	Status      string    `json:"status" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ShipmentException) TableName() string {
	return "shipment_exceptions"
}

func (e ShipmentException) ToDomain() domain.ShipmentException {
	return domain.ShipmentException{
		ID:          domain.ID(e.ID),
		ShipmentID:  domain.ID(e.ShipmentID),
		Description: e.Description,
		Blocking:    e.Blocking,
		Status:      domain.ExceptionStatus(e.Status),
		CreatedAt:   utils.Time{Time: e.CreatedAt},
		UpdatedAt:   utils.Time{Time: e.UpdatedAt},
	}
}

func FromShipmentException(value domain.ShipmentException) ShipmentException {
	return ShipmentException{
		ID:          string(value.ID),
		ShipmentID:  string(value.ShipmentID),
		Description: value.Description,
		Blocking:    value.Blocking,
		Status:      string(value.Status),
		CreatedAt:   value.CreatedAt.Time,
		UpdatedAt:   value.UpdatedAt.Time,
	}
}
