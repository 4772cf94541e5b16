package wire

import (
	"os"

	"shipops-server/cmd/config"
	"shipops-server/internal/infra/cache"
	"shipops-server/internal/infra/pubsub"
	"shipops-server/internal/infra/sql"
	"shipops-server/internal/operations/persistence"
	"shipops-server/internal/operations/usecases"

	"github.com/google/wire"
)

var ShipmentServiceSet = wire.NewSet(
	provideDatabase,
	providePubSubFactory,
	providePublisherFactory,
	persistence.NewShipmentRepository,
	wire.Bind(new(usecases.ShipmentRepository), new(*persistence.SimpleShipmentRepository)),
	persistence.NewTemplateRepository,
	wire.Bind(new(usecases.TemplateRepository), new(*persistence.SimpleTemplateRepository)),
	usecases.NewShipmentService,
)

var StepServiceSet = wire.NewSet(
	ShipmentServiceSet,
	provideCache,
	persistence.NewStepRepository,
	wire.Bind(new(usecases.StepRepository), new(*persistence.SimpleStepRepository)),
	persistence.NewExceptionRepository,
	wire.Bind(new(usecases.ExceptionRepository), new(*persistence.SimpleExceptionRepository)),
	persistence.NewDocumentRepository,
	wire.Bind(new(usecases.DocumentRepository), new(*persistence.SimpleDocumentRepository)),
	usecases.NewDocumentService,
	wire.Bind(new(usecases.DocumentService), new(*usecases.SimpleDocumentService)),
	persistence.NewGoodsRepository,
	wire.Bind(new(usecases.GoodsRepository), new(*persistence.SimpleGoodsRepository)),
	usecases.NewStepService,
)

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func providePubSubFactory(cfg config.AppConfig) *pubsub.Factory {
	env, ok := os.LookupEnv("ENV")
	if !ok {
		env = "production"
	}

	return pubsub.NewFactory(pubsub.FactoryOptions{
		Environment:       env,
		KafkaBrokers:      cfg.Kafka.Brokers,
		ConsumerGroup:     cfg.Kafka.Group,
		SchemaRegistryURL: cfg.Kafka.SchemaRegistry,
	})
}

func providePublisherFactory(factory *pubsub.Factory) pubsub.PublisherFactory {
	return factory.GetPublisherFactory()
}

func provideDatabase(cfg config.AppConfig) sql.ORM {
	env, ok := os.LookupEnv("ENV")
	if !ok {
		env = "production"
	}

	if env == "local" {
		orm, err := sql.NewMemoryORM()
		if err != nil {
			panic(err)
		}

		return orm
	}

	orm, err := sql.NewPostgresORM(cfg.Postgresql.DSN)
	if err != nil {
		panic(err)
	}

	return orm
}

func provideCache(cfg config.AppConfig) cache.Cache {
	env, ok := os.LookupEnv("ENV")
	if !ok {
		env = "production"
	}

	if env != "local" && cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			panic(err)
		}

		return redisCache
	}

	memoryCache, err := cache.New(cache.DefaultConfig())
	if err != nil {
		panic(err)
	}

	return memoryCache
}

func provideCountdownSchedule(cfg config.AppConfig) string {
	return cfg.Countdown.Schedule
}
