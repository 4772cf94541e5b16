//go:build wireinject
// +build wireinject

package wire

import (
	"time"

	"shipops-server/internal/infra/async"
	"shipops-server/internal/operations/httpapi"
	"shipops-server/internal/operations/persistence"
	"shipops-server/internal/operations/usecases"

	"github.com/google/wire"
)

func InitializeShipmentController() (*httpapi.ShipmentController, error) {
	wire.Build(
		provideAppConfig,
		ShipmentServiceSet,
		wire.Bind(new(usecases.ShipmentService), new(*usecases.SimpleShipmentService)),
		httpapi.NewShipmentController,
	)
	return nil, nil
}

func InitializeStepController(broker async.InternalBroker) (*httpapi.StepController, error) {
	wire.Build(
		provideAppConfig,
		StepServiceSet,
		wire.Bind(new(usecases.StepService), new(*usecases.SimpleStepService)),
		wire.Bind(new(usecases.ShipmentService), new(*usecases.SimpleShipmentService)),
		httpapi.NewStepController,
	)
	return nil, nil
}

func InitializeDocumentController() (*httpapi.DocumentController, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		providePubSubFactory,
		providePublisherFactory,
		provideCache,
		persistence.NewDocumentRepository,
		wire.Bind(new(usecases.DocumentRepository), new(*persistence.SimpleDocumentRepository)),
		usecases.NewDocumentService,
		wire.Bind(new(usecases.DocumentService), new(*usecases.SimpleDocumentService)),
		httpapi.NewDocumentController,
	)
	return nil, nil
}

func InitializeGoodsController() (*httpapi.GoodsController, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		providePubSubFactory,
		providePublisherFactory,
		persistence.NewGoodsRepository,
		wire.Bind(new(usecases.GoodsRepository), new(*persistence.SimpleGoodsRepository)),
		usecases.NewGoodsService,
		wire.Bind(new(usecases.GoodsService), new(*usecases.SimpleGoodsService)),
		httpapi.NewGoodsController,
	)
	return nil, nil
}

func InitializeStepEventWebSocketController(broker async.InternalBroker) (*httpapi.StepEventWebSocketController, error) {
	wire.Build(
		httpapi.NewStepEventWebSocketController,
	)
	return nil, nil
}

func InitializeCountdownWorker(ticker *time.Ticker, broker async.InternalBroker) (*usecases.CountdownWorker, error) {
	wire.Build(
		provideAppConfig,
		provideCountdownSchedule,
		provideDatabase,
		providePubSubFactory,
		providePublisherFactory,
		persistence.NewStepRepository,
		wire.Bind(new(usecases.StepRepository), new(*persistence.SimpleStepRepository)),
		persistence.NewShipmentRepository,
		wire.Bind(new(usecases.ShipmentRepository), new(*persistence.SimpleShipmentRepository)),
		usecases.NewCountdownWorker,
	)
	return nil, nil
}
