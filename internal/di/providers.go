package di

import (
	"context"
	"fmt"
	"io"
	"time"

	domrepo "TriggerLab/internal/domain/repository"
	"TriggerLab/internal/handler/api"
	"TriggerLab/internal/handler/ws"
	internalrepo "TriggerLab/internal/repository"
	"TriggerLab/internal/usecase"
	pkgcache "TriggerLab/pkg/cache"
	pkgch "TriggerLab/pkg/clickhouse"
	"TriggerLab/pkg/config"
	xhttp "TriggerLab/pkg/http"
	pkgkafka "TriggerLab/pkg/kafka"
	"TriggerLab/pkg/logger"
	"TriggerLab/pkg/metrics"
	"TriggerLab/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideCacheService creates the cache backing the local trigger slot:
// Redis when enabled, in-process otherwise.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}
	svc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return svc, nil
}

// ProvideClickHouseClient creates a ClickHouse client with the archive
// schema in place, or nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.SchemaStmts(cfg.ClickHouse.Database, cfg.ClickHouse.Table)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideOutcomeArchive creates the outcome archive: ClickHouse when
// available, in-memory otherwise.
func ProvideOutcomeArchive(chClient *pkgch.Client, cfg *config.Config, l *logger.Logger) domrepo.OutcomeArchive {
	if chClient == nil {
		return internalrepo.NewMemoryOutcomeArchive()
	}
	table := cfg.ClickHouse.Database + "." + cfg.ClickHouse.Table
	return internalrepo.NewCHOutcomeArchive(chClient, table, l)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideHub creates the WebSocket event hub.
func ProvideHub(l *logger.Logger) *ws.Hub {
	return ws.NewHub(l)
}

// ProvidePublisher fans lifecycle events into the WebSocket hub and, when
// configured, the Kafka topic.
func ProvidePublisher(hub *ws.Hub, producer *pkgkafka.Producer, cfg *config.Config) domrepo.Publisher {
	if producer == nil {
		return hub
	}
	return internalrepo.NewMultiPublisher(hub, internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic))
}

// ProvideRemoteStore creates the HTTP client for the remote trigger store.
func ProvideRemoteStore(cfg *config.Config, l *logger.Logger) domrepo.RemoteTriggerStore {
	return internalrepo.NewHTTPRemoteStore(cfg.RemoteStore.BaseURL, cfg.RemoteStore.Timeout, l)
}

// ProvideTriggerCache creates the local cache slot.
func ProvideTriggerCache(svc pkgcache.Service, cfg *config.Config, l *logger.Logger) domrepo.TriggerCache {
	return internalrepo.NewLocalTriggerCache(svc, cfg.Cache.SlotKey, l)
}

// ProvideSynchronizer creates the record synchronizer.
func ProvideSynchronizer(
	remote domrepo.RemoteTriggerStore,
	cache domrepo.TriggerCache,
	archive domrepo.OutcomeArchive,
	publisher domrepo.Publisher,
	m domrepo.Metrics,
	l *logger.Logger,
) *usecase.TriggerSynchronizer {
	return usecase.NewTriggerSynchronizer(remote, cache, archive, publisher, m, l)
}

// ProvideReanalyzer creates the scheduled reanalysis job.
func ProvideReanalyzer(sync *usecase.TriggerSynchronizer, archive domrepo.OutcomeArchive, l *logger.Logger) *usecase.Reanalyzer {
	return usecase.NewReanalyzer(sync, archive, l)
}

// ProvideHandler combines the API handler and the WebSocket hub.
func ProvideHandler(l *logger.Logger, sync *usecase.TriggerSynchronizer, m domrepo.Metrics, hub *ws.Hub) xhttp.Handler {
	return xhttp.Handlers{
		api.NewTriggersEchoHandler(l, sync, m),
		hub,
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	handler xhttp.Handler,
	reanalyzer *usecase.Reanalyzer,
	publisher domrepo.Publisher,
	chClient *pkgch.Client,
	cacheSvc pkgcache.Service,
) *server.App {
	closers := []io.Closer{publisher}
	if chClient != nil {
		closers = append(closers, chClient)
	}
	if c, ok := cacheSvc.(io.Closer); ok {
		closers = append(closers, c)
	}
	return server.New(cfg, l, handler, reanalyzer, closers...)
}
