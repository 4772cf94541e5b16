package usecases

import (
	"context"
	"log/slog"

	"shipops-server/internal/operations/domain"
)

func NewGoodsService(repository GoodsRepository) *SimpleGoodsService {
	return &SimpleGoodsService{repository: repository}
}

var _ GoodsService = (*SimpleGoodsService)(nil)

type SimpleGoodsService struct {
	repository GoodsRepository
}

func (s *SimpleGoodsService) GoodsByShipment(ctx context.Context, shipmentID domain.ID) ([]domain.ShipmentGood, error) {
	goods, err := s.repository.FindByShipment(ctx, shipmentID)
	if err != nil {
		slog.Error("getting goods by shipment",
			slog.String("shipment_id", string(shipmentID)),
			slog.String("error", err.Error()))
		return nil, errUnknown
	}

	return goods, nil
}
