//go:build wireinject
// +build wireinject

package di

import (
	"TriggerLab/pkg/config"
	"TriggerLab/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCacheService,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideRemoteStore,
		ProvideTriggerCache,
		ProvideOutcomeArchive,
		ProvideHub,
		ProvidePublisher,

		// Use cases
		ProvideSynchronizer,
		ProvideReanalyzer,

		// HTTP surface
		ProvideHandler,

		ProvideApp,
	)
	return nil, nil
}
