package cmd

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	config "github.com/provscan/explorer-ingest/configs"
	"github.com/provscan/explorer-ingest/internal/orchestrator"
	"github.com/provscan/explorer-ingest/internal/rpc"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	ingestCmd = &cobra.Command{
		Use:   "ingest",
		Short: "Run the metric ingestion collectors",
		Long:  "Dials the node and valuation service and runs the collectors that write normalized metric series to the store.",
		Run: func(cmd *cobra.Command, args []string) {
			RunIngest(cmd, args)
		},
	}
)

func RunIngest(cmd *cobra.Command, args []string) {
	log.Info().Msg("Starting ingestion")
	node, err := rpc.Initialize()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize node client")
	}
	log.Info().Str("url", node.GetURL()).Bool("secure", node.IsSecure()).Msg("Node client ready")

	nav, err := rpc.NewNavClient()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize nav client")
	}

	if config.Cfg.Metrics.Enabled {
		go serveMetrics(config.Cfg.Metrics.Port)
	}

	orchestrator, err := orchestrator.NewOrchestrator(node, nav)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create orchestrator")
	}

	orchestrator.Start()
}

func serveMetrics(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	log.Info().Msgf("Serving prometheus metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server stopped")
	}
}
