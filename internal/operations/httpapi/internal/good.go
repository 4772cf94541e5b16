package internal

import "shipops-server/internal/operations/domain"

type GoodResponse struct {
	ID                int64  `json:"id"`
	ShipmentID        string `json:"shipment_id"`
	Description       string `json:"description"`
	Quantity          int64  `json:"quantity"`
	AllocatedQuantity int64  `json:"allocated_quantity"`
	RemainingQuantity int64  `json:"remaining_quantity"`
}

func FromShipmentGood(value domain.ShipmentGood) GoodResponse {
	return GoodResponse{
		ID:                value.ID,
		ShipmentID:        value.ShipmentID.String(),
		Description:       value.Description,
		Quantity:          value.Quantity,
		AllocatedQuantity: value.AllocatedQuantity,
		RemainingQuantity: value.Remaining(),
	}
}
