package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipops-server/internal/infra/pubsub"
	"shipops-server/internal/infra/sql"
	"shipops-server/internal/infra/utils"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/fieldschema"
	"shipops-server/internal/operations/persistence/internal"
	"shipops-server/internal/operations/usecases"
	"shipops-server/internal/shared_kernel/avro"
)

const _goodsAllocationsTopic = "goods_allocations"

func NewGoodsRepository(publisherFactory pubsub.PublisherFactory, orm sql.ORM) (*SimpleGoodsRepository, error) {
	publisher, err := publisherFactory.New(_goodsAllocationsTopic, &avro.AvroGoodsAllocation{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	if err := orm.AutoMigrate(&internal.ShipmentGood{}, &internal.GoodsAllocation{}); err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleGoodsRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.GoodsRepository = (*SimpleGoodsRepository)(nil)

type SimpleGoodsRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleGoodsRepository) FindByShipment(ctx context.Context, shipmentID domain.ID) ([]domain.ShipmentGood, error) {
	var entities []internal.ShipmentGood
	err := r.orm.
		WithContext(ctx).
		Where("shipment_id = ?", string(shipmentID)).
		Order("id").
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	goods := make([]domain.ShipmentGood, 0, len(entities))
	for _, entity := range entities {
		goods = append(goods, entity.ToDomain())
	}

	return goods, nil
}

// ApplyAllocations runs inside a single transaction so a step either takes
// everything it asked for or nothing at all.
func (r *SimpleGoodsRepository) ApplyAllocations(ctx context.Context, shipmentID, stepID domain.ID, allocations []fieldschema.GoodsAllocation) error {
	if len(allocations) == 0 {
		return nil
	}

	err := r.orm.Transaction(func(tx sql.ORM) error {
		for _, allocation := range allocations {
			var good internal.ShipmentGood
			err := tx.
				WithContext(ctx).
				First(&good, "id = ? AND shipment_id = ?", allocation.ShipmentGoodID, string(shipmentID)).
				Error()
			if errors.Is(err, sql.ErrRecordNotFound) {
				return fmt.Errorf("good %d: %w", allocation.ShipmentGoodID, usecases.ErrGoodNotFound)
			}
			if err != nil {
				return fmt.Errorf("database query: %w", err)
			}

			if good.Quantity-good.AllocatedQuantity < allocation.TakenQuantity {
				return fmt.Errorf("good %d: %w", allocation.ShipmentGoodID, usecases.ErrAllocationOverCommits)
			}

			good.AllocatedQuantity += allocation.TakenQuantity
			if err := tx.WithContext(ctx).Save(&good).Error(); err != nil {
				return fmt.Errorf("database update: %w", err)
			}

			ledger := internal.GoodsAllocation{
				ID:             utils.GenerateUUID(),
				ShipmentGoodID: allocation.ShipmentGoodID,
				ShipmentID:     string(shipmentID),
				StepID:         string(stepID),
				TakenQuantity:  allocation.TakenQuantity,
				CreatedAt:      time.Now(),
			}
			if err := tx.WithContext(ctx).Create(&ledger).Error(); err != nil {
				return fmt.Errorf("database insert: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	now := time.Now()
	for _, allocation := range allocations {
		message := avro.ToAvroGoodsAllocation(
			string(shipmentID),
			string(stepID),
			allocation.ShipmentGoodID,
			allocation.TakenQuantity,
			now,
		)
		if err := r.publisher.Publish(ctx, pubsub.Key(stepID), message); err != nil {
			return fmt.Errorf("publishing to kafka: %w", err)
		}
	}

	return nil
}
