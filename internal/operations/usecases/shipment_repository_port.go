package usecases

import (
	"context"
	"errors"

	"shipops-server/internal/infra/httpserver"
	"shipops-server/internal/operations/domain"
)

var (
	ErrShipmentNotFound   = errors.New("shipment not found")
	ErrShipmentDuplicated = errors.New("shipment already exists")
)

type ShipmentRepository interface {
	CreateShipment(context.Context, domain.Shipment) error
	UpdateShipment(context.Context, domain.Shipment) error
	Get(context.Context, domain.ID) (domain.Shipment, error)
	FindAll(context.Context, httpserver.PaginationParams) ([]domain.Shipment, int, error)
}
