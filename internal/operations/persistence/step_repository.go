package persistence

import (
	"context"
	"errors"
	"fmt"

	"shipops-server/internal/infra/pubsub"
	"shipops-server/internal/infra/sql"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/persistence/internal"
	"shipops-server/internal/operations/usecases"
	"shipops-server/internal/shared_kernel/avro"
)

const _stepsTopic = "shipment_steps"

func NewStepRepository(publisherFactory pubsub.PublisherFactory, orm sql.ORM) (*SimpleStepRepository, error) {
	publisher, err := publisherFactory.New(_stepsTopic, &avro.AvroStep{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	if err := orm.AutoMigrate(&internal.Step{}); err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleStepRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.StepRepository = (*SimpleStepRepository)(nil)

type SimpleStepRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleStepRepository) CreateStep(ctx context.Context, step domain.Step) error {
	_, err := r.Get(ctx, step.ID)
	if err == nil {
		return usecases.ErrStepDuplicated
	}
	if !errors.Is(err, usecases.ErrStepNotFound) {
		return fmt.Errorf("getting step: %w", err)
	}

	entity := internal.FromStep(step)
	if err := r.orm.WithContext(ctx).Create(&entity).Error(); err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	if err := r.publisher.Publish(ctx, pubsub.Key(step.ID), avro.ToAvroStep(step)); err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleStepRepository) UpdateStep(ctx context.Context, step domain.Step) error {
	entity := internal.FromStep(step)
	if err := r.orm.WithContext(ctx).Save(&entity).Error(); err != nil {
		return fmt.Errorf("database update: %w", err)
	}

	if err := r.publisher.Publish(ctx, pubsub.Key(step.ID), avro.ToAvroStep(step)); err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleStepRepository) Get(ctx context.Context, id domain.ID) (domain.Step, error) {
	var entity internal.Step
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", string(id)).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Step{}, usecases.ErrStepNotFound
	}

	if err != nil {
		return domain.Step{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleStepRepository) FindByShipment(ctx context.Context, shipmentID domain.ID) ([]domain.Step, error) {
	var entities []internal.Step
	err := r.orm.
		WithContext(ctx).
		Where("shipment_id = ?", string(shipmentID)).
		Order("created_at").
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	steps := make([]domain.Step, 0, len(entities))
	for _, entity := range entities {
		steps = append(steps, entity.ToDomain())
	}

	return steps, nil
}

func (r *SimpleStepRepository) FindActiveWithCountdowns(ctx context.Context) ([]domain.Step, error) {
	var entities []internal.Step
	err := r.orm.
		WithContext(ctx).
		Where("status <> ? AND has_countdowns = ?", string(domain.StepStatusDone), true).
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	steps := make([]domain.Step, 0, len(entities))
	for _, entity := range entities {
		steps = append(steps, entity.ToDomain())
	}

	return steps, nil
}
