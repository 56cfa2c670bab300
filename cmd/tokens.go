package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/registry"
)

var remoteTokens bool

var tokensCmd = &cobra.Command{
	Use:     "list-tokens",
	Aliases: []string{"tokens", "ls"},
	Short:   "List all supported tokens",
	Long: `List the tokens available for swaps.

By default the built-in token table is shown. Pass --remote to query the
backend's token list instead.

Examples:
  chaincompass list-tokens
  chaincompass list-tokens --remote`,
	Run: runListTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().BoolVar(&remoteTokens, "remote", false, "Query the backend instead of the built-in table")
}

func runListTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if remoteTokens {
		apiClient, _ := newAPIClient(cmd)
		tokens, err := apiClient.Tokens(context.Background())
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		if jsonOutput {
			jsonData, _ := json.MarshalIndent(tokens, "", "  ")
			fmt.Println(string(jsonData))
			return
		}

		fmt.Println("\n" + strings.Repeat("=", 50))
		color.Green("              SUPPORTED TOKENS")
		fmt.Println(strings.Repeat("=", 50))
		for _, t := range tokens {
			fmt.Printf("  %-10s  %2d decimals  %s\n",
				color.YellowString(t.Symbol), t.Decimals, color.HiBlackString(t.Name))
		}
		fmt.Printf("\nTotal: %d tokens\n\n", len(tokens))
		return
	}

	tokens := registry.Tokens()

	if jsonOutput {
		out := make([]map[string]any, 0, len(tokens))
		for _, t := range tokens {
			out = append(out, map[string]any{"symbol": t.Symbol, "decimals": t.Decimals})
		}
		jsonData, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
	color.Green("              SUPPORTED TOKENS")
	fmt.Println(strings.Repeat("=", 50))
	for _, t := range tokens {
		fmt.Printf("  %-10s  %2d decimals\n", color.YellowString(t.Symbol), t.Decimals)
	}
	fmt.Printf("\nTotal: %d tokens\n\n", len(tokens))
}
