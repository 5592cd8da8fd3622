package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mferrerdev/gitfolio/internal/config"
	"github.com/mferrerdev/gitfolio/internal/domain"
	"github.com/mferrerdev/gitfolio/internal/gateway"
	"github.com/mferrerdev/gitfolio/internal/seed"
	"github.com/mferrerdev/gitfolio/internal/server"
	"github.com/mferrerdev/gitfolio/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the aggregation API over HTTP",
	Long: `Starts an HTTP server exposing profile aggregation, organization
digests, contribution calendars, CV export and locally seeded landing
profiles under /api/v1.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		aggregator := usecase.NewAggregator(githubGateway, logger, cfg.FanoutLimit)

		var seeds []domain.SeedProfile
		if cfg.SeedFile != "" {
			seeds, err = seed.Load(cfg.SeedFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to load seed file: %v\n", err)
				os.Exit(1)
			}
		}

		router := server.NewRouter(server.NewHandler(aggregator, seeds, logger))
		addr := cfg.ServerAddress()
		fmt.Fprintf(os.Stderr, "Listening on %s\n", addr)
		if err := router.Run(addr); err != nil {
			fmt.Fprintf(os.Stderr, "Server stopped: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
