package persistence

import (
	"context"
	"errors"
	"fmt"

	"shipops-server/internal/infra/httpserver"
	"shipops-server/internal/infra/pubsub"
	"shipops-server/internal/infra/sql"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/persistence/internal"
	"shipops-server/internal/operations/usecases"
	"shipops-server/internal/shared_kernel/avro"
)

const _shipmentsTopic = "shipments"

func NewShipmentRepository(publisherFactory pubsub.PublisherFactory, orm sql.ORM) (*SimpleShipmentRepository, error) {
	publisher, err := publisherFactory.New(_shipmentsTopic, &avro.AvroShipment{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	if err := orm.AutoMigrate(&internal.Shipment{}); err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleShipmentRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.ShipmentRepository = (*SimpleShipmentRepository)(nil)

type SimpleShipmentRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleShipmentRepository) CreateShipment(ctx context.Context, shipment domain.Shipment) error {
	var existing internal.Shipment
	err := r.orm.
		WithContext(ctx).
		Where("reference = ?", shipment.Reference).
		First(&existing).
		Error()
	if err == nil {
		return usecases.ErrShipmentDuplicated
	}
	if !errors.Is(err, sql.ErrRecordNotFound) {
		return fmt.Errorf("database query: %w", err)
	}

	entity := internal.FromShipment(shipment)
	if err := r.orm.WithContext(ctx).Create(&entity).Error(); err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	if err := r.publisher.Publish(ctx, pubsub.Key(shipment.ID), avro.ToAvroShipment(shipment)); err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleShipmentRepository) UpdateShipment(ctx context.Context, shipment domain.Shipment) error {
	entity := internal.FromShipment(shipment)
	if err := r.orm.WithContext(ctx).Save(&entity).Error(); err != nil {
		return fmt.Errorf("database update: %w", err)
	}

	if err := r.publisher.Publish(ctx, pubsub.Key(shipment.ID), avro.ToAvroShipment(shipment)); err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleShipmentRepository) Get(ctx context.Context, id domain.ID) (domain.Shipment, error) {
	var entity internal.Shipment
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", string(id)).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Shipment{}, usecases.ErrShipmentNotFound
	}

	if err != nil {
		return domain.Shipment{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleShipmentRepository) FindAll(ctx context.Context, pagination httpserver.PaginationParams) ([]domain.Shipment, int, error) {
	var total int64
	err := r.orm.
		WithContext(ctx).
		Model(&internal.Shipment{}).
		Count(&total).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("database count: %w", err)
	}

	var entities []internal.Shipment
	err = r.orm.
		WithContext(ctx).
		Order("created_at").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&entities).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	shipments := make([]domain.Shipment, 0, len(entities))
	for _, entity := range entities {
		shipments = append(shipments, entity.ToDomain())
	}

	return shipments, int(total), nil
}
