//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"archibridge/application/ports"
	"archibridge/application/workspace"
	"archibridge/infrastructure/config"
	"archibridge/infrastructure/messaging/logbus"
	"archibridge/infrastructure/persistence/archivefile"
	"archibridge/infrastructure/persistence/memory"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideMetrics,
	ProvideEventPublisher,
	ProvideArchiveStore,
	ProvideDocumentRepository,
	ProvideDocumentOptions,
	ProvideExportDefaults,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Bind(new(workspace.Repository), new(*memory.DocumentRepository)),
	wire.Bind(new(ports.EventPublisher), new(*logbus.Publisher)),
	wire.Bind(new(ports.ModelStore), new(*archivefile.Store)),
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}
