package usecases

import (
	"context"

	"shipops-server/internal/operations/domain"
)

type ExceptionRepository interface {
	CreateException(context.Context, domain.ShipmentException) error
	UpdateException(context.Context, domain.ShipmentException) error
	FindOpenByShipment(context.Context, domain.ID) ([]domain.ShipmentException, error)
}
