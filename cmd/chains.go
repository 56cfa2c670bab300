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

var remoteChains bool

var chainsCmd = &cobra.Command{
	Use:     "list-chains",
	Aliases: []string{"chains"},
	Short:   "List all supported blockchain networks",
	Long: `List the blockchain networks available for swaps.

By default the built-in chain table is shown. Pass --remote to query the
backend's chain list instead.

Examples:
  chaincompass list-chains
  chaincompass list-chains --remote`,
	Run: runListChains,
}

func init() {
	rootCmd.AddCommand(chainsCmd)

	chainsCmd.Flags().BoolVar(&remoteChains, "remote", false, "Query the backend instead of the built-in table")
}

func runListChains(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if remoteChains {
		apiClient, _ := newAPIClient(cmd)
		chains, err := apiClient.Chains(context.Background())
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		if jsonOutput {
			jsonData, _ := json.MarshalIndent(chains, "", "  ")
			fmt.Println(string(jsonData))
			return
		}

		fmt.Println("\n" + strings.Repeat("=", 50))
		color.Green("              SUPPORTED CHAINS")
		fmt.Println(strings.Repeat("=", 50))
		for _, c := range chains {
			fmt.Printf("  %-20s  chain ID %s\n", color.YellowString(c.Name), color.CyanString("%d", c.ID))
		}
		fmt.Printf("\nTotal: %d chains\n\n", len(chains))
		return
	}

	chains := registry.Chains()

	if jsonOutput {
		out := make([]map[string]any, 0, len(chains))
		for _, c := range chains {
			out = append(out, map[string]any{"name": c.DisplayName, "chain_id": c.ChainID})
		}
		jsonData, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
	color.Green("              SUPPORTED CHAINS")
	fmt.Println(strings.Repeat("=", 50))
	for _, c := range chains {
		fmt.Printf("  %-20s  chain ID %s\n", color.YellowString(c.DisplayName), color.CyanString("%d", c.ChainID))
	}
	fmt.Printf("\nTotal: %d chains\n\n", len(chains))
}
