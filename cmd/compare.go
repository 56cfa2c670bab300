package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/client"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/parser"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/registry"
)

var compareChains []string

var compareCmd = &cobra.Command{
	Use:   "compare <amount> <token> on <chain> to <token>",
	Short: "Compare a swap across several destination chains",
	Long: `Quote the same swap against multiple destination chains and rank the
routes by score.

Examples:
  chaincompass compare 100 USDC on polygon to ETH
  chaincompass compare 1 ETH on ethereum to USDC --chains arbitrum,optimism,base`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringSliceVar(&compareChains, "chains", []string{"arbitrum", "optimism", "base"},
		"Destination chains to compare (at most 5)")
}

func runCompare(cmd *cobra.Command, args []string) {
	intent, err := parser.ParseSwapCommand(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient, _ := newAPIClient(cmd)
	quoter := client.NewQuoter(apiClient)

	routes := make([]client.QuoteParams, 0, len(compareChains))
	for _, chain := range compareChains {
		candidate := *intent
		candidate.ToChain = chain
		params, err := quoter.BuildParams(candidate)
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		routes = append(routes, params)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = fmt.Sprintf(" Comparing %d routes...", len(routes))
		s.Start()
	}

	result, err := apiClient.CompareRoutes(context.Background(), routes)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        ROUTE COMPARISON")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("\n  %s %s on %s -> %s\n\n", intent.HumanAmount,
		color.YellowString(intent.FromToken), intent.FromChain, color.YellowString(intent.ToToken))

	// Results come back sorted by score, not in submission order; the
	// echoed route says which destination each entry belongs to.
	for _, route := range result.Routes {
		chain := chainLabel(route.Route.ToChain)
		if route.Error != "" {
			fmt.Printf("  %-18s %s\n", chain, color.RedString(route.Error))
			continue
		}
		if route.Quote == nil {
			continue
		}

		output := 0.0
		if route.Quote.OutputUSD != nil {
			output = *route.Quote.OutputUSD
		}
		fees := 0.0
		if route.Quote.FeesUSD != nil {
			fees = *route.Quote.FeesUSD
		}
		provider := client.FallbackProvider
		if route.Quote.Provider != nil && *route.Quote.Provider != "" {
			provider = *route.Quote.Provider
		}

		fmt.Printf("  %-18s output ~$%.4f  fees $%.4f  score %.2f  via %s\n",
			chain, output, fees, route.Score, color.CyanString(provider))
	}

	if result.BestRoute != nil && result.BestRoute.Quote != nil {
		fmt.Println()
		color.Green("  Best route score: %.2f", result.BestRoute.Score)
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

// chainLabel maps a decimal chain ID back to its display name.
func chainLabel(chainID string) string {
	id, err := strconv.ParseInt(chainID, 10, 64)
	if err != nil {
		return chainID
	}
	for _, c := range registry.Chains() {
		if c.ChainID == id {
			return c.DisplayName
		}
	}
	return chainID
}
