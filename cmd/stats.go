package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/client"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/stats"
)

var (
	watchStats    bool
	watchInterval time.Duration
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show backend cache and request statistics",
	Long: `Show the quote service's cache and request counters.

Pass --watch to keep sampling until interrupted.

Examples:
  chaincompass stats
  chaincompass stats --watch --interval 10s`,
	Run: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&watchStats, "watch", false, "Keep sampling until interrupted")
	statsCmd.Flags().DurationVar(&watchInterval, "interval", stats.DefaultInterval, "Sampling interval for --watch")
}

func runStats(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	apiClient, _ := newAPIClient(cmd)

	if !watchStats {
		snapshot, err := apiClient.GetStats(context.Background())
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		printStats(snapshot, jsonOutput)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := stats.New(apiClient, watchInterval, func(sample stats.Sample) {
		if sample.Err != nil {
			color.Red("%s  %v", sample.At.Format("15:04:05"), sample.Err)
			return
		}
		if !jsonOutput {
			fmt.Printf("%s  ", color.HiBlackString(sample.At.Format("15:04:05")))
		}
		printStats(sample.Stats, jsonOutput)
	})
	poller.Run(ctx)
}

func printStats(s *client.Stats, jsonOutput bool) {
	if jsonOutput {
		jsonData, _ := json.MarshalIndent(s, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("cache %d/%d (%s)  requests %d  hits %d  misses %d  hit rate %s\n",
		s.Cache.Size, s.Cache.MaxSize, s.Cache.Utilization,
		s.Requests.Total, s.Requests.CacheHits, s.Requests.CacheMisses,
		color.GreenString(s.Requests.HitRate))
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the backend is reachable",
	Run: func(cmd *cobra.Command, args []string) {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		apiClient, cfg := newAPIClient(cmd)

		health, err := apiClient.Health(context.Background())
		if err != nil {
			printError(fmt.Errorf("backend at %s is unreachable: %w", cfg.BaseURL, err))
			os.Exit(1)
		}

		if jsonOutput {
			jsonData, _ := json.MarshalIndent(health, "", "  ")
			fmt.Println(string(jsonData))
			return
		}

		status := health.Status
		if strings.EqualFold(status, "ok") || strings.EqualFold(status, "healthy") {
			status = color.GreenString(status)
		} else {
			status = color.YellowString(status)
		}
		fmt.Printf("\nBackend: %s\nStatus:  %s\n", cfg.BaseURL, status)
		if health.Version != "" {
			fmt.Printf("Version: %s\n", health.Version)
		}
		for name, state := range health.Services {
			fmt.Printf("  %-12s %s\n", name, state)
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
