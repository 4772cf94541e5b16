package httpapi_test

import (
	"context"

	"shipops-server/internal/infra/httpserver"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/fieldschema"
	"shipops-server/internal/operations/usecases"
)

type fakeShipmentService struct {
	shipments map[domain.ID]domain.Shipment
	createErr error
	listErr   error
}

func newFakeShipmentService() *fakeShipmentService {
	return &fakeShipmentService{shipments: make(map[domain.ID]domain.Shipment)}
}

func (f *fakeShipmentService) CreateShipment(_ context.Context, shipment domain.Shipment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.shipments[shipment.ID] = shipment
	return nil
}

func (f *fakeShipmentService) GetShipment(_ context.Context, id domain.ID) (domain.Shipment, error) {
	shipment, ok := f.shipments[id]
	if !ok {
		return domain.Shipment{}, usecases.ErrShipmentNotFound
	}
	return shipment, nil
}

func (f *fakeShipmentService) AllShipments(_ context.Context, pagination httpserver.PaginationParams) ([]domain.Shipment, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	all := make([]domain.Shipment, 0, len(f.shipments))
	for _, shipment := range f.shipments {
		all = append(all, shipment)
	}
	return all, len(all), nil
}

type fakeStepService struct {
	steps     map[domain.ID]domain.Step
	lastEdit  usecases.StepEdit
	result    usecases.EditResult
	editErr   error
	createErr error
}

func newFakeStepService() *fakeStepService {
	return &fakeStepService{steps: make(map[domain.ID]domain.Step)}
}

func (f *fakeStepService) CreateStep(_ context.Context, step domain.Step) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.steps[step.ID] = step
	return nil
}

func (f *fakeStepService) GetStep(_ context.Context, id domain.ID) (domain.Step, error) {
	step, ok := f.steps[id]
	if !ok {
		return domain.Step{}, usecases.ErrStepNotFound
	}
	return step, nil
}

func (f *fakeStepService) StepsByShipment(_ context.Context, shipmentID domain.ID) ([]domain.Step, error) {
	var steps []domain.Step
	for _, step := range f.steps {
		if step.ShipmentID == shipmentID {
			steps = append(steps, step)
		}
	}
	return steps, nil
}

func (f *fakeStepService) ApplyEdit(_ context.Context, edit usecases.StepEdit) (usecases.EditResult, error) {
	f.lastEdit = edit
	if f.editErr != nil {
		return usecases.EditResult{}, f.editErr
	}
	return f.result, nil
}

type fakeDocumentService struct {
	documents []domain.Document
	types     fieldschema.DocumentSet
}

func (f *fakeDocumentService) DocumentsByShipment(_ context.Context, shipmentID domain.ID) ([]domain.Document, error) {
	var out []domain.Document
	for _, doc := range f.documents {
		if doc.ShipmentID == shipmentID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *fakeDocumentService) ReceivedDocumentTypes(_ context.Context, _ domain.ID) (fieldschema.DocumentSet, error) {
	return f.types, nil
}

func (f *fakeDocumentService) RegisterDocument(_ context.Context, doc domain.Document, _ []byte) error {
	f.documents = append(f.documents, doc)
	return nil
}

type fakeGoodsService struct {
	goods []domain.ShipmentGood
}

func (f *fakeGoodsService) GoodsByShipment(_ context.Context, shipmentID domain.ID) ([]domain.ShipmentGood, error) {
	var out []domain.ShipmentGood
	for _, good := range f.goods {
		if good.ShipmentID == shipmentID {
			out = append(out, good)
		}
	}
	return out, nil
}
