// Package di wires the application together.
package di

import (
	"go.uber.org/zap"

	"archibridge/application/commands/bus"
	"archibridge/application/ports"
	querybus "archibridge/application/queries/bus"
	"archibridge/application/workspace"
	domainconfig "archibridge/domain/config"
	"archibridge/infrastructure/config"
	"archibridge/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Domain     *domainconfig.DomainConfig
	Logger     *zap.Logger
	Metrics    *observability.Collector
	Publisher  ports.EventPublisher
	Store      ports.ModelStore
	Documents  workspace.Repository
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
}
