// statscli runs the same organization aggregation as the web service
// from the terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/kartikp36/github-org-stats/internal/models"
	"github.com/kartikp36/github-org-stats/internal/services"
	"github.com/kartikp36/github-org-stats/pkg/config"
	"github.com/kartikp36/github-org-stats/pkg/logger"
)

var (
	org            string
	token          string
	since          string
	blacklist      string
	top            int
	includeReviews bool
	excludeForks   bool
	jsonOutput     bool
)

var rootCmd = &cobra.Command{
	Use:   "statscli",
	Short: "Aggregate per-contributor stats across a GitHub organization",
	Long: `statscli enumerates every repository of a GitHub organization,
aggregates per-contributor commit and line counts (and optionally pull
request review counts), and prints the top contributors.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&org, "org", "", "GitHub organization to analyze (required)")
	rootCmd.Flags().StringVar(&token, "token", "", "GitHub token (falls back to GITHUB_TOKEN)")
	rootCmd.Flags().StringVar(&since, "since", "", "Opaque time-window hint, echoed in the output")
	rootCmd.Flags().StringVar(&blacklist, "blacklist", "", "Comma-separated exclusion rules (user:x, repo:y, or bare)")
	rootCmd.Flags().IntVar(&top, "top", models.DefaultTop, "Number of contributors to keep")
	rootCmd.Flags().BoolVar(&includeReviews, "reviews", false, "Include pull request review counts")
	rootCmd.Flags().BoolVar(&excludeForks, "exclude-forks", false, "Skip forked repositories")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as pretty JSON")
	cobra.CheckErr(rootCmd.MarkFlagRequired("org"))
}

func run(cmd *cobra.Command, args []string) error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	clientService := services.NewGitHubClientService(
		config.AppConfig.GitHub.Token,
		config.AppConfig.GitHub.RequestTimeout,
		logger.GetLogger(),
	)
	statsService := services.NewStatsService(clientService, config.AppConfig.Stats.Concurrency, logger.GetLogger())

	cfg := models.RunConfig{
		Org:            org,
		Since:          since,
		IncludeReviews: includeReviews,
		ExcludeForks:   excludeForks,
		Blacklist:      models.ParseBlacklist(blacklist),
		Top:            top,
		Token:          token,
	}

	if !statsService.HasCredential(token) {
		pterm.Warning.Println(models.NoTokenWarning)
	}

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Aggregating contributors for %s...", org))
	data, err := statsService.Run(ctx, cfg)
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("Aggregated %d contributors", data.Summary.Contributors))

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	table := pterm.TableData{{"User", "Commits", "Lines Added", "Lines Removed", "Reviews"}}
	for _, c := range data.Stats {
		table = append(table, []string{
			c.User,
			strconv.Itoa(c.Commits),
			strconv.Itoa(c.LinesAdded),
			strconv.Itoa(c.LinesRemoved),
			strconv.Itoa(c.Reviews),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total commits: %d, mean %.1f, median %.1f\n",
		data.Summary.TotalCommits, data.Summary.MeanCommits, data.Summary.MedianCommits)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
