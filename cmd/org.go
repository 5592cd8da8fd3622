package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mferrerdev/gitfolio/internal/config"
	"github.com/mferrerdev/gitfolio/internal/domain"
	"github.com/mferrerdev/gitfolio/internal/gateway"
	"github.com/mferrerdev/gitfolio/internal/reference"
	"github.com/mferrerdev/gitfolio/internal/usecase"
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Aggregates an organization digest and outputs it as JSON",
	Long: `Aggregates an organization: detail, public member list, repositories,
teams and commit activity for the most starred repositories. The public
member list is load-bearing; every other branch degrades to empty on
failure.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		rawURL, _ := cmd.Flags().GetString("url")

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		classification := reference.Classify(rawURL)
		if classification.Kind != reference.KindOrg {
			fmt.Fprintf(os.Stderr, "Error: %v: %q\n", domain.ErrInvalidReference, rawURL)
			os.Exit(1)
		}

		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		aggregator := usecase.NewAggregator(githubGateway, logger, cfg.FanoutLimit)

		digest, err := aggregator.AggregateOrganization(ctx, classification.Org)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to aggregate organization: %v\n", err)
			os.Exit(1)
		}

		printJSON(digest)
	},
}

func init() {
	rootCmd.AddCommand(orgCmd)
	orgCmd.Flags().StringP("url", "u", "", "Organization URL (https://github.com/org)")
	orgCmd.MarkFlagRequired("url")
}
