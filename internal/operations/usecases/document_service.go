package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shipops-server/internal/infra/cache"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/fieldschema"
)

const _documentTypesCacheTTL = time.Minute

func NewDocumentService(repository DocumentRepository, typeCache cache.Cache) *SimpleDocumentService {
	return &SimpleDocumentService{
		repository: repository,
		typeCache:  typeCache,
	}
}

var _ DocumentService = (*SimpleDocumentService)(nil)

// SimpleDocumentService fronts the document repository and keeps the
// received-document-type set per shipment in the cache layer, since every
// step edit consults it.
type SimpleDocumentService struct {
	repository DocumentRepository
	typeCache  cache.Cache
}

func (s *SimpleDocumentService) DocumentsByShipment(ctx context.Context, shipmentID domain.ID) ([]domain.Document, error) {
	documents, err := s.repository.FindByShipment(ctx, shipmentID)
	if err != nil {
		slog.Error("getting documents by shipment",
			slog.String("shipment_id", string(shipmentID)),
			slog.String("error", err.Error()))
		return nil, errUnknown
	}

	return documents, nil
}

func (s *SimpleDocumentService) ReceivedDocumentTypes(ctx context.Context, shipmentID domain.ID) (fieldschema.DocumentSet, error) {
	key := documentTypesCacheKey(shipmentID)
	value, err := s.typeCache.GetOrSet(ctx, key, _documentTypesCacheTTL, func() (any, error) {
		types, err := s.repository.DocumentTypesByShipment(ctx, shipmentID)
		if err != nil {
			return nil, fmt.Errorf("loading document types: %w", err)
		}
		return types, nil
	})
	if err != nil {
		slog.Error("getting received document types",
			slog.String("shipment_id", string(shipmentID)),
			slog.String("error", err.Error()))
		return nil, errUnknown
	}

	types, ok := documentTypesFromCache(value)
	if !ok {
		// Stale cache entry with an unexpected shape; reload next time.
		s.typeCache.Delete(ctx, key)
		return fieldschema.NewDocumentSet(), nil
	}

	return fieldschema.NewDocumentSet(types...), nil
}

// documentTypesFromCache accepts both the in-process []string and the
// []any shape a msgpack-backed cache hands back after a round trip.
func documentTypesFromCache(value any) ([]string, bool) {
	switch t := value.(type) {
	case nil:
		return nil, true
	case []string:
		return t, true
	case []any:
		types := make([]string, 0, len(t))
		for _, entry := range t {
			str, ok := entry.(string)
			if !ok {
				return nil, false
			}
			types = append(types, str)
		}
		return types, true
	}

	return nil, false
}

func (s *SimpleDocumentService) RegisterDocument(ctx context.Context, doc domain.Document, content []byte) error {
	if err := s.repository.CreateDocument(ctx, doc, content); err != nil {
		slog.Error("creating document",
			slog.String("document_type", doc.DocumentType),
			slog.String("error", err.Error()))
		return errUnknown
	}

	s.typeCache.Delete(ctx, documentTypesCacheKey(doc.ShipmentID))
	return nil
}

func documentTypesCacheKey(shipmentID domain.ID) string {
	return fmt.Sprintf("document_types:%s", shipmentID)
}
