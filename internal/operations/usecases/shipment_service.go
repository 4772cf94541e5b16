package usecases

import (
	"context"
	"errors"
	"log/slog"

	"shipops-server/internal/infra/httpserver"
	"shipops-server/internal/operations/domain"
)

func NewShipmentService(
	repository ShipmentRepository,
	templateRepository TemplateRepository,
) *SimpleShipmentService {
	return &SimpleShipmentService{
		repository:         repository,
		templateRepository: templateRepository,
	}
}

var _ ShipmentService = (*SimpleShipmentService)(nil)

type SimpleShipmentService struct {
	repository         ShipmentRepository
	templateRepository TemplateRepository
}

func (s *SimpleShipmentService) CreateShipment(ctx context.Context, shipment domain.Shipment) error {
	if shipment.TemplateID != "" {
		if _, err := s.templateRepository.Get(ctx, shipment.TemplateID); err != nil {
			if errors.Is(err, ErrTemplateNotFound) {
				return ErrTemplateNotFound
			}
			slog.Error("loading template", slog.String("error", err.Error()))
			return errUnknown
		}
	}

	err := s.repository.CreateShipment(ctx, shipment)
	if errors.Is(err, ErrShipmentDuplicated) {
		slog.Warn("shipment duplicated", slog.String("reference", shipment.Reference))
		return ErrShipmentDuplicated
	}
	if err != nil {
		slog.Error("creating shipment", slog.String("error", err.Error()))
		return errUnknown
	}

	return nil
}

func (s *SimpleShipmentService) GetShipment(ctx context.Context, id domain.ID) (domain.Shipment, error) {
	shipment, err := s.repository.Get(ctx, id)
	if errors.Is(err, ErrShipmentNotFound) {
		return domain.Shipment{}, ErrShipmentNotFound
	}
	if err != nil {
		slog.Error("getting shipment", slog.String("error", err.Error()))
		return domain.Shipment{}, errUnknown
	}

	return shipment, nil
}

func (s *SimpleShipmentService) AllShipments(ctx context.Context, pagination httpserver.PaginationParams) ([]domain.Shipment, int, error) {
	shipments, total, err := s.repository.FindAll(ctx, pagination)
	if err != nil {
		slog.Error("getting all shipments", slog.String("error", err.Error()))
		return nil, 0, errUnknown
	}

	return shipments, total, nil
}
