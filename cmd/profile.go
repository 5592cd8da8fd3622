package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mferrerdev/gitfolio/internal/config"
	"github.com/mferrerdev/gitfolio/internal/domain"
	"github.com/mferrerdev/gitfolio/internal/gateway"
	"github.com/mferrerdev/gitfolio/internal/reference"
	"github.com/mferrerdev/gitfolio/internal/seed"
	"github.com/mferrerdev/gitfolio/internal/usecase"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Aggregates a contributor profile and outputs it as JSON",
	Long: `Aggregates the profile of one contributor of a repository: contributor
record, user detail, repository list and language distribution. Enrichment
failures degrade to empty values; only the contributor list itself is
load-bearing. With --seed-file, a hard failure falls back to the locally
seeded profile at the same index.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		rawURL, _ := cmd.Flags().GetString("url")
		index, _ := cmd.Flags().GetInt("index")
		seedFile, _ := cmd.Flags().GetString("seed-file")

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		if seedFile == "" {
			seedFile = cfg.SeedFile
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
			// Index errors are user-actionable; everything else may fall
			// back to the seed file when one is configured.
			if seedFile != "" && !errors.Is(err, domain.ErrIndexOutOfRange) {
				if printSeedProfile(seedFile, index, err) {
					return
				}
			}
			fmt.Fprintf(os.Stderr, "Failed to aggregate profile: %v\n", err)
			os.Exit(1)
		}

		printJSON(profile)
	},
}

// printSeedProfile prints the seed row at index, reporting whether the
// fallback could be served.
func printSeedProfile(path string, index int, cause error) bool {
	profiles, err := seed.Load(path)
	if err != nil || index < 0 || index >= len(profiles) {
		return false
	}
	fmt.Fprintf(os.Stderr, "Live aggregation failed (%v), serving seed profile.\n", cause)
	printJSON(profiles[index])
	return true
}

func printJSON(v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringP("url", "u", "", "Repository URL (https://github.com/owner/repo)")
	profileCmd.Flags().IntP("index", "i", 0, "Contributor index within the repository's contributor list")
	profileCmd.Flags().String("seed-file", "", "CSV seed file used as fallback when aggregation fails")
	profileCmd.MarkFlagRequired("url")
}
