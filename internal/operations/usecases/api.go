package usecases

import (
	"context"

	"shipops-server/internal/infra/httpserver"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/fieldschema"
)

type ShipmentService interface {
	CreateShipment(context.Context, domain.Shipment) error
	GetShipment(context.Context, domain.ID) (domain.Shipment, error)
	AllShipments(context.Context, httpserver.PaginationParams) ([]domain.Shipment, int, error)
}

type StepService interface {
	CreateStep(context.Context, domain.Step) error
	GetStep(context.Context, domain.ID) (domain.Step, error)
	StepsByShipment(context.Context, domain.ID) ([]domain.Step, error)
	ApplyEdit(context.Context, StepEdit) (EditResult, error)
}

type DocumentService interface {
	DocumentsByShipment(context.Context, domain.ID) ([]domain.Document, error)
	ReceivedDocumentTypes(context.Context, domain.ID) (fieldschema.DocumentSet, error)
	RegisterDocument(ctx context.Context, doc domain.Document, content []byte) error
}

type GoodsService interface {
	GoodsByShipment(context.Context, domain.ID) ([]domain.ShipmentGood, error)
}
