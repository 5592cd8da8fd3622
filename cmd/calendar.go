package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mferrerdev/gitfolio/internal/calendar"
	"github.com/mferrerdev/gitfolio/internal/config"
	"github.com/mferrerdev/gitfolio/internal/gateway"
	"github.com/mferrerdev/gitfolio/internal/usecase"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Lays out a user's contribution calendar and outputs it as JSON",
	Long: `Fetches a year of daily contribution counts for a user and lays them
out as a week-major calendar grid with month labels and intensity levels.
With --synthetic, deterministic placeholder samples are used instead of the
live API.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		login, _ := cmd.Flags().GetString("user")
		synthetic, _ := cmd.Flags().GetBool("synthetic")
		today := time.Now().UTC()

		if synthetic {
			grid := calendar.Build(calendar.Synthetic(login, today), today)
			printJSON(grid)
			return
		}

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

		grid, err := aggregator.BuildUserCalendar(ctx, login, today)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build calendar: %v\n", err)
			os.Exit(1)
		}
		printJSON(grid)
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().StringP("user", "u", "", "GitHub login to build the calendar for")
	calendarCmd.Flags().Bool("synthetic", false, "Use deterministic placeholder samples instead of the live API")
	calendarCmd.MarkFlagRequired("user")
}
