package usecases

import (
	"context"
	"errors"

	"shipops-server/internal/operations/domain"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentRepository interface {
	// CreateDocument stores the document record together with its content.
	CreateDocument(ctx context.Context, doc domain.Document, content []byte) error
	FindByShipment(context.Context, domain.ID) ([]domain.Document, error)
	// DocumentTypesByShipment returns the distinct document types received
	// for the shipment.
	DocumentTypesByShipment(context.Context, domain.ID) ([]string, error)
}
