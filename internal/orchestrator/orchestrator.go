package orchestrator

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	config "github.com/provscan/explorer-ingest/configs"
	"github.com/provscan/explorer-ingest/internal/registry"
	"github.com/provscan/explorer-ingest/internal/rpc"
	"github.com/provscan/explorer-ingest/internal/storage"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	node             rpc.INodeClient
	nav              rpc.INavClient
	store            storage.IMetricStore
	network          registry.Network
	collectorEnabled bool
	cancel           context.CancelFunc
}

func NewOrchestrator(node rpc.INodeClient, nav rpc.INavClient) (*Orchestrator, error) {
	store, err := storage.NewConnector(&config.Cfg.Storage)
	if err != nil {
		return nil, err
	}

	network := registry.Mainnet
	if config.Cfg.RPC.Network == string(registry.Testnet) {
		network = registry.Testnet
	}

	return &Orchestrator{
		node:             node,
		nav:              nav,
		store:            store,
		network:          network,
		collectorEnabled: config.Cfg.Collector.Enabled,
	}, nil
}

func (o *Orchestrator) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel

	var wg sync.WaitGroup

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigChan
		log.Info().Msgf("Received signal %v, initiating graceful shutdown", sig)
		o.cancel()
	}()

	if o.collectorEnabled {
		navCollector := NewNavCollector(o.nav, o.store, o.network)
		activityCollector := NewActivityCollector(o.node, o.store, o.network)

		wg.Add(2)
		go func() {
			defer wg.Done()
			navCollector.Start(ctx)
		}()
		go func() {
			defer wg.Done()
			activityCollector.Start(ctx)
		}()
	}

	wg.Wait()
	if err := o.store.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close metric store")
	}
	log.Info().Msg("Orchestrator stopped")
}
