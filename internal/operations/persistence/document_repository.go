package persistence

import (
	"context"
	"fmt"

	"shipops-server/internal/infra/pubsub"
	"shipops-server/internal/infra/sql"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/persistence/internal"
	"shipops-server/internal/operations/usecases"
	"shipops-server/internal/shared_kernel/avro"
)

const _documentsTopic = "shipment_documents"

func NewDocumentRepository(publisherFactory pubsub.PublisherFactory, orm sql.ORM) (*SimpleDocumentRepository, error) {
	publisher, err := publisherFactory.New(_documentsTopic, &avro.AvroDocument{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	if err := orm.AutoMigrate(&internal.Document{}); err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleDocumentRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.DocumentRepository = (*SimpleDocumentRepository)(nil)

type SimpleDocumentRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleDocumentRepository) CreateDocument(ctx context.Context, doc domain.Document, content []byte) error {
	entity := internal.FromDocument(doc, content)
	if err := r.orm.WithContext(ctx).Create(&entity).Error(); err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	if err := r.publisher.Publish(ctx, pubsub.Key(doc.ID), avro.ToAvroDocument(doc)); err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleDocumentRepository) FindByShipment(ctx context.Context, shipmentID domain.ID) ([]domain.Document, error) {
	var entities []internal.Document
	err := r.orm.
		WithContext(ctx).
		Where("shipment_id = ?", string(shipmentID)).
		Order("created_at").
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	documents := make([]domain.Document, 0, len(entities))
	for _, entity := range entities {
		documents = append(documents, entity.ToDomain())
	}

	return documents, nil
}

func (r *SimpleDocumentRepository) DocumentTypesByShipment(ctx context.Context, shipmentID domain.ID) ([]string, error) {
	var entities []internal.Document
	err := r.orm.
		WithContext(ctx).
		Where("shipment_id = ?", string(shipmentID)).
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	seen := make(map[string]bool, len(entities))
	types := make([]string, 0, len(entities))
	for _, entity := range entities {
		if seen[entity.DocumentType] {
			continue
		}
		seen[entity.DocumentType] = true
		types = append(types, entity.DocumentType)
	}

	return types, nil
}
