package internal

import (
	"time"

	"shipops-server/internal/operations/domain"
)

type ShipmentGood struct {
	ID                int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ShipmentID        string `json:"shipment_id" gorm:"index"`
	Description       string `json:"description"`
	Quantity          int64  `json:"quantity"`
	AllocatedQuantity int64  `json:"allocated_quantity"`
}

func (ShipmentGood) TableName() string {
	return "shipment_goods"
}

func (g ShipmentGood) ToDomain() domain.ShipmentGood {
	return domain.ShipmentGood{
		ID:                g.ID,
		ShipmentID:        domain.ID(g.ShipmentID),
		Description:       g.Description,
		Quantity:          g.Quantity,
		AllocatedQuantity: g.AllocatedQuantity,
	}
}

func FromShipmentGood(value domain.ShipmentGood) ShipmentGood {
	return ShipmentGood{
		ID:                value.ID,
		ShipmentID:        string(value.ShipmentID),
		Description:       value.Description,
		Quantity:          value.Quantity,
		AllocatedQuantity: value.AllocatedQuantity,
	}
}

// GoodsAllocation is the ledger row recording what a completed step took
// from one good.
type GoodsAllocation struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	ShipmentGoodID int64     `json:"shipment_good_id" gorm:"index"`
	ShipmentID     string    `json:"shipment_id" gorm:"index"`
	StepID         string    `json:"step_id" gorm:"index"`
	TakenQuantity  int64     `json:"taken_quantity"`
	CreatedAt      time.Time `json:"created_at"`
}

func (GoodsAllocation) TableName() string {
	return "goods_allocations"
}
