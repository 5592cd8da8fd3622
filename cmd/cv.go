package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mferrerdev/gitfolio/internal/config"
	"github.com/mferrerdev/gitfolio/internal/domain"
	"github.com/mferrerdev/gitfolio/internal/export"
	"github.com/mferrerdev/gitfolio/internal/gateway"
	"github.com/mferrerdev/gitfolio/internal/reference"
	"github.com/mferrerdev/gitfolio/internal/usecase"
)

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Exports a contributor profile as a standalone HTML CV document",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		rawURL, _ := cmd.Flags().GetString("url")
		index, _ := cmd.Flags().GetInt("index")
		out, _ := cmd.Flags().GetString("out")

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		classification := reference.Classify(rawURL)
		if classification.Kind != reference.KindRepo {
			fmt.Fprintf(os.Stderr, "Error: %v: %q\n", domain.ErrInvalidReference, rawURL)
			os.Exit(1)
		}

		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		aggregator := usecase.NewAggregator(githubGateway, logger, cfg.FanoutLimit)

		profile, err := aggregator.AggregateProfile(ctx, classification.Repo, index)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to aggregate profile: %v\n", err)
			os.Exit(1)
		}

		doc, err := export.BuildCV(profile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render CV: %v\n", err)
			os.Exit(1)
		}

		if out == "" {
			fmt.Println(doc)
			return
		}
		if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", out, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(cvCmd)
	cvCmd.Flags().StringP("url", "u", "", "Repository URL (https://github.com/owner/repo)")
	cvCmd.Flags().IntP("index", "i", 0, "Contributor index within the repository's contributor list")
	cvCmd.Flags().StringP("out", "o", "", "Output file path (stdout when empty)")
	cvCmd.MarkFlagRequired("url")
}
