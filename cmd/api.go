package cmd

import (
	"github.com/blobscan/indexer/api"
	config "github.com/blobscan/indexer/configs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	apiCmd = &cobra.Command{
		Use:   "api",
		Short: "Serve the health and metrics endpoints",
		Run: func(cmd *cobra.Command, args []string) {
			RunApi(cmd, args)
		},
	}
)

func RunApi(cmd *cobra.Command, args []string) {
	if !config.Cfg.API.Enabled {
		log.Info().Msg("API server disabled")
		return
	}
	if err := api.Start(); err != nil {
		log.Fatal().Err(err).Msg("API server failed")
	}
}
