package usecases

import (
	"context"
	"errors"

	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/fieldschema"
)

var (
	ErrGoodNotFound          = errors.New("shipment good not found")
	ErrAllocationOverCommits = errors.New("allocation exceeds remaining quantity")
)

type GoodsRepository interface {
	FindByShipment(context.Context, domain.ID) ([]domain.ShipmentGood, error)
	// ApplyAllocations commits the allocations a completed step takes from
	// the shipment's goods, atomically.
	ApplyAllocations(ctx context.Context, shipmentID, stepID domain.ID, allocations []fieldschema.GoodsAllocation) error
}
