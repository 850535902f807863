package cmd

import (
	config "github.com/blobscan/indexer/configs"
	"github.com/blobscan/indexer/internal/clients/beacon"
	"github.com/blobscan/indexer/internal/clients/blobscan"
	"github.com/blobscan/indexer/internal/clients/execution"
	"github.com/blobscan/indexer/internal/orchestrator"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	indexerCmd = &cobra.Command{
		Use:   "indexer",
		Short: "Run the head-following blob indexer",
		Run: func(cmd *cobra.Command, args []string) {
			RunIndexer(cmd, args)
		},
	}
)

func RunIndexer(cmd *cobra.Command, args []string) {
	log.Info().Msg("Starting indexer")

	beaconClient, err := beacon.NewClient(config.Cfg.Beacon.Endpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize beacon client")
	}

	executionClient, err := execution.Initialize()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize execution client")
	}
	defer executionClient.Close()

	blobscanClient, err := blobscan.NewClient(config.Cfg.Blobscan.Endpoint, config.Cfg.Blobscan.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize blobscan client")
	}

	orch, err := orchestrator.NewOrchestrator(beaconClient, executionClient, blobscanClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create orchestrator")
	}

	if err := orch.Start(); err != nil {
		log.Fatal().Err(err).Msg("Orchestrator failed")
	}
}
