package cmd

import (
	"os"

	configs "github.com/provscan/explorer-ingest/configs"
	customLogger "github.com/provscan/explorer-ingest/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "explorer-ingest",
		Short: "Ingests chain and valuation data into explorer metrics",
		Long:  "Fetches blocks, transactions and NAV events from remote services, normalizes them into financially-precise explorer metrics and writes them to the metric store.",
		Run: func(cmd *cobra.Command, args []string) {
			RunIngest(cmd, args)
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yml)")
	rootCmd.PersistentFlags().String("rpc-url", "", "Node RPC URL to fetch blocks and transactions from")
	rootCmd.PersistentFlags().String("rpc-network", "mainnet", "Which network the node serves (mainnet or testnet)")
	rootCmd.PersistentFlags().Int("rpc-timeoutSeconds", 0, "Deadline in seconds applied to node calls without one")
	rootCmd.PersistentFlags().String("nav-url", "", "Valuation service URL to fetch NAV events from")
	rootCmd.PersistentFlags().String("nav-apiKey", "", "API key for the valuation service")
	rootCmd.PersistentFlags().String("nav-denom", "nhash", "Denom to fetch NAV events for")
	rootCmd.PersistentFlags().Int("nav-timeoutSeconds", 0, "Deadline in seconds applied to valuation service calls")
	rootCmd.PersistentFlags().String("log-level", "", "Log level to use for the application")
	rootCmd.PersistentFlags().Bool("log-prettify", false, "Whether to prettify the log output")
	rootCmd.PersistentFlags().Bool("collector-enabled", true, "Toggle the metric collectors")
	rootCmd.PersistentFlags().Int("collector-interval", 60000, "How often to run the collectors in milliseconds")
	rootCmd.PersistentFlags().Int("collector-navPageSize", 100, "How many NAV events to fetch per cycle")
	rootCmd.PersistentFlags().Int64("collector-supplyNano", 0, "Token supply in nano-units used for market cap")
	rootCmd.PersistentFlags().String("storage-redis-addr", "", "Redis address for the metric store")
	rootCmd.PersistentFlags().String("storage-redis-password", "", "Redis password for the metric store")
	rootCmd.PersistentFlags().Int("storage-redis-db", 0, "Redis database for the metric store")
	rootCmd.PersistentFlags().Int("storage-memory-maxItems", 0, "Max series held by the in-memory metric store")
	rootCmd.PersistentFlags().Bool("metrics-enabled", false, "Whether to serve prometheus metrics")
	rootCmd.PersistentFlags().Int("metrics-port", 2112, "Port to serve prometheus metrics on")
	viper.BindPFlag("rpc.url", rootCmd.PersistentFlags().Lookup("rpc-url"))
	viper.BindPFlag("rpc.network", rootCmd.PersistentFlags().Lookup("rpc-network"))
	viper.BindPFlag("rpc.timeoutSeconds", rootCmd.PersistentFlags().Lookup("rpc-timeoutSeconds"))
	viper.BindPFlag("nav.url", rootCmd.PersistentFlags().Lookup("nav-url"))
	viper.BindPFlag("nav.apiKey", rootCmd.PersistentFlags().Lookup("nav-apiKey"))
	viper.BindPFlag("nav.denom", rootCmd.PersistentFlags().Lookup("nav-denom"))
	viper.BindPFlag("nav.timeoutSeconds", rootCmd.PersistentFlags().Lookup("nav-timeoutSeconds"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.prettify", rootCmd.PersistentFlags().Lookup("log-prettify"))
	viper.BindPFlag("collector.enabled", rootCmd.PersistentFlags().Lookup("collector-enabled"))
	viper.BindPFlag("collector.interval", rootCmd.PersistentFlags().Lookup("collector-interval"))
	viper.BindPFlag("collector.navPageSize", rootCmd.PersistentFlags().Lookup("collector-navPageSize"))
	viper.BindPFlag("collector.supplyNano", rootCmd.PersistentFlags().Lookup("collector-supplyNano"))
	viper.BindPFlag("storage.redis.addr", rootCmd.PersistentFlags().Lookup("storage-redis-addr"))
	viper.BindPFlag("storage.redis.password", rootCmd.PersistentFlags().Lookup("storage-redis-password"))
	viper.BindPFlag("storage.redis.db", rootCmd.PersistentFlags().Lookup("storage-redis-db"))
	viper.BindPFlag("storage.memory.maxItems", rootCmd.PersistentFlags().Lookup("storage-memory-maxItems"))
	viper.BindPFlag("metrics.enabled", rootCmd.PersistentFlags().Lookup("metrics-enabled"))
	viper.BindPFlag("metrics.port", rootCmd.PersistentFlags().Lookup("metrics-port"))
	rootCmd.AddCommand(ingestCmd)
}

func initConfig() {
	configs.LoadConfig(cfgFile)
	customLogger.InitLogger()
}
