//go:build wireinject
// +build wireinject

package wire

import (
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/infra/executor"
	"vehicle-bridge/internal/infra/mqtt"
	"vehicle-bridge/internal/vehicle/communication"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/httpapi"
	"vehicle-bridge/internal/vehicle/mapper"
	"vehicle-bridge/internal/vehicle/persistence"
	"vehicle-bridge/internal/vehicle/requests"
	"vehicle-bridge/internal/vehicle/usecases"
	"vehicle-bridge/internal/vehicle/workers"

	"github.com/google/wire"
)

var EngineSet = wire.NewSet(
	provideVehicleSettings,
	domain.NewProcessModel,
	provideChannelFactory,
	wire.Bind(new(usecases.ChannelManagerFactory), new(*communication.VehicleChannelFactory)),
	requests.NewMatcherFactory,
	wire.Bind(new(usecases.RequestQueueFactory), new(requests.MatcherFactory)),
	provideOrderMapper,
	wire.Bind(new(usecases.OrderMapper), new(*mapper.OrderMapper)),
	executor.NewSerial,
	wire.Bind(new(usecases.KernelExecutor), new(*executor.Serial)),
	executor.NewCronScheduler,
	wire.Bind(new(usecases.Scheduler), new(*executor.CronScheduler)),
	provideCommandTracker,
	usecases.NewEngine,
	wire.Bind(new(usecases.VehicleService), new(*usecases.Engine)),
)

var StateCacheSet = wire.NewSet(
	provideCache,
	provideVehicleStateCache,
	wire.Bind(new(usecases.VehicleStateCache), new(*persistence.VehicleStateCache)),
)

var PubSubSet = wire.NewSet(
	provideSchemaRegistry,
	provideCodecFactory,
	providePubSubFactory,
	providePublisherFactory,
	provideConsumerFactory,
)

var JournalSet = wire.NewSet(
	provideORM,
	persistence.NewCommandJournal,
	wire.Bind(new(usecases.CommandJournal), new(*persistence.CommandJournal)),
	provideReplicator,
	httpapi.NewCommandJournalController,
)

func InitializeApplication(broker async.InternalBroker, mqttClient mqtt.Client) (*Application, func(), error) {
	wire.Build(
		provideAppConfig,
		provideVehicleName,
		EngineSet,
		StateCacheSet,
		PubSubSet,
		JournalSet,
		usecases.NewEventRelay,
		usecases.NewEngineCollector,
		httpapi.NewVehicleController,
		httpapi.NewVehicleEventsController,
		communication.NewStatusPublisher,
		workers.NewCommandIntakeWorker,
		provideMirrorTicker,
		workers.NewSnapshotMirrorWorker,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
