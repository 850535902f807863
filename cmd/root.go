package cmd

import (
	"os"

	configs "github.com/blobscan/indexer/configs"
	"github.com/blobscan/indexer/internal/env"
	customLogger "github.com/blobscan/indexer/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "blob-indexer",
		Short: "Blob indexer",
		Long:  "Indexes blob-carrying blocks by reconciling beacon and execution data and submitting it to the indexing backend",
		Run: func(cmd *cobra.Command, args []string) {
			go func() {
				RunApi(cmd, args)
			}()
			RunIndexer(cmd, args)
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
	rootCmd.PersistentFlags().String("beacon-endpoint", "", "Beacon node endpoint")
	rootCmd.PersistentFlags().String("execution-url", "", "Execution node RPC url")
	rootCmd.PersistentFlags().String("blobscan-endpoint", "", "Indexing backend endpoint")
	rootCmd.PersistentFlags().String("blobscan-secret", "", "Bearer token for the indexing backend")
	rootCmd.PersistentFlags().Int("retry-initial-interval-ms", 0, "Initial backoff interval for transient slot failures")
	rootCmd.PersistentFlags().Float64("retry-multiplier", 0, "Backoff multiplier for transient slot failures")
	rootCmd.PersistentFlags().Int("retry-max-interval-ms", 0, "Max backoff interval for transient slot failures")
	rootCmd.PersistentFlags().Int("retry-max-elapsed-time-ms", 0, "Give up retrying a slot after this much elapsed time")
	rootCmd.PersistentFlags().Bool("sync-enabled", true, "Toggle the head-following synchronizer")
	rootCmd.PersistentFlags().Uint64("sync-from-slot", 0, "From which slot to start syncing")
	rootCmd.PersistentFlags().Uint64("sync-until-slot", 0, "Until which slot to sync")
	rootCmd.PersistentFlags().Int("sync-slots-per-chunk", 0, "How many slots to process per chunk")
	rootCmd.PersistentFlags().Int("sync-parallel-workers", 0, "How many slots to process in parallel within a chunk")
	rootCmd.PersistentFlags().Int("sync-interval-ms", 0, "How often to look for new slots in milliseconds")
	rootCmd.PersistentFlags().Int("head-tracker-interval-ms", 0, "How often to poll the beacon head in milliseconds")
	rootCmd.PersistentFlags().Bool("api-enabled", true, "Toggle the health/metrics API server")
	rootCmd.PersistentFlags().String("api-host", "", "Host for the health/metrics API server")
	rootCmd.PersistentFlags().Int("api-port", 3030, "Port for the health/metrics API server")
	rootCmd.PersistentFlags().String("log-level", "", "Log level to use for the application")
	rootCmd.PersistentFlags().Bool("log-prettify", false, "Whether to prettify the log output")
	viper.BindPFlag("beacon.endpoint", rootCmd.PersistentFlags().Lookup("beacon-endpoint"))
	viper.BindPFlag("execution.url", rootCmd.PersistentFlags().Lookup("execution-url"))
	viper.BindPFlag("blobscan.endpoint", rootCmd.PersistentFlags().Lookup("blobscan-endpoint"))
	viper.BindPFlag("blobscan.secret", rootCmd.PersistentFlags().Lookup("blobscan-secret"))
	viper.BindPFlag("retry.initialIntervalMs", rootCmd.PersistentFlags().Lookup("retry-initial-interval-ms"))
	viper.BindPFlag("retry.multiplier", rootCmd.PersistentFlags().Lookup("retry-multiplier"))
	viper.BindPFlag("retry.maxIntervalMs", rootCmd.PersistentFlags().Lookup("retry-max-interval-ms"))
	viper.BindPFlag("retry.maxElapsedTimeMs", rootCmd.PersistentFlags().Lookup("retry-max-elapsed-time-ms"))
	viper.BindPFlag("sync.enabled", rootCmd.PersistentFlags().Lookup("sync-enabled"))
	viper.BindPFlag("sync.fromSlot", rootCmd.PersistentFlags().Lookup("sync-from-slot"))
	viper.BindPFlag("sync.untilSlot", rootCmd.PersistentFlags().Lookup("sync-until-slot"))
	viper.BindPFlag("sync.slotsPerChunk", rootCmd.PersistentFlags().Lookup("sync-slots-per-chunk"))
	viper.BindPFlag("sync.parallelWorkers", rootCmd.PersistentFlags().Lookup("sync-parallel-workers"))
	viper.BindPFlag("sync.intervalMs", rootCmd.PersistentFlags().Lookup("sync-interval-ms"))
	viper.BindPFlag("headTracker.intervalMs", rootCmd.PersistentFlags().Lookup("head-tracker-interval-ms"))
	viper.BindPFlag("api.enabled", rootCmd.PersistentFlags().Lookup("api-enabled"))
	viper.BindPFlag("api.host", rootCmd.PersistentFlags().Lookup("api-host"))
	viper.BindPFlag("api.port", rootCmd.PersistentFlags().Lookup("api-port"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.prettify", rootCmd.PersistentFlags().Lookup("log-prettify"))
	rootCmd.AddCommand(indexerCmd)
	rootCmd.AddCommand(apiCmd)
}

func initConfig() {
	env.Load()
	configs.LoadConfig(cfgFile)
	customLogger.InitLogger()
}
