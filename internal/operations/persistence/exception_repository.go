package persistence

import (
	"context"
	"fmt"

	"shipops-server/internal/infra/sql"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/persistence/internal"
	"shipops-server/internal/operations/usecases"
)

func NewExceptionRepository(orm sql.ORM) (*SimpleExceptionRepository, error) {
	if err := orm.AutoMigrate(&internal.ShipmentException{}); err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleExceptionRepository{orm: orm}, nil
}

var _ usecases.ExceptionRepository = (*SimpleExceptionRepository)(nil)

type SimpleExceptionRepository struct {
	orm sql.ORM
}

func (r *SimpleExceptionRepository) CreateException(ctx context.Context, exception domain.ShipmentException) error {
	entity := internal.FromShipmentException(exception)
	if err := r.orm.WithContext(ctx).Create(&entity).Error(); err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

func (r *SimpleExceptionRepository) UpdateException(ctx context.Context, exception domain.ShipmentException) error {
	entity := internal.FromShipmentException(exception)
	if err := r.orm.WithContext(ctx).Save(&entity).Error(); err != nil {
		return fmt.Errorf("database update: %w", err)
	}

	return nil
}

func (r *SimpleExceptionRepository) FindOpenByShipment(ctx context.Context, shipmentID domain.ID) ([]domain.ShipmentException, error) {
	var entities []internal.ShipmentException
	err := r.orm.
		WithContext(ctx).
		Where("shipment_id = ? AND status = ?", string(shipmentID), string(domain.ExceptionStatusOpen)).
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	exceptions := make([]domain.ShipmentException, 0, len(entities))
	for _, entity := range entities {
		exceptions = append(exceptions, entity.ToDomain())
	}

	return exceptions, nil
}
