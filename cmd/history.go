package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/wallet"
)

var (
	historyAddress string
	historyLimit   int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past swap submissions for a wallet",
	Long: `Show the submission history recorded for a wallet address.

Defaults to the connected wallet; pass --address to inspect another one.

Examples:
  chaincompass history
  chaincompass history --address 0xSomeAddress --limit 5`,
	Run: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyAddress, "address", "", "Wallet address (defaults to the connected wallet)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of records to fetch")
}

func runHistory(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	apiClient, cfg := newAPIClient(cmd)

	address := historyAddress
	if address == "" {
		store, err := openWalletStore()
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		var connected bool
		address, connected = wallet.NewFallbackSource(store, cfg.WalletAddress).Address()
		if !connected {
			printError(fmt.Errorf("no wallet connected. Run: chaincompass wallet connect <address>, or pass --address"))
			os.Exit(1)
		}
	}
	records, err := apiClient.History(context.Background(), address, historyLimit)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	if len(records) == 0 {
		fmt.Printf("\nNo submissions recorded for %s\n\n", address)
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	color.Green("                           SWAP HISTORY")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("\nWallet: %s\n\n", color.CyanString(address))

	for _, rec := range records {
		fmt.Printf("  %s %s %s -> %s %s",
			color.HiBlackString(rec.CreatedAt),
			rec.FromAmount, color.YellowString(rec.FromToken),
			rec.ToAmount, color.YellowString(rec.ToToken))
		fmt.Printf("  (chain %d -> %d)\n", rec.FromChainID, rec.ToChainID)

		status := rec.Status
		switch strings.ToLower(status) {
		case "completed", "success":
			status = color.GreenString(status)
		case "failed":
			status = color.RedString(status)
		}
		fmt.Printf("    %s  tx %s\n", status, color.HiBlackString(rec.TxHash))
	}

	fmt.Printf("\nTotal: %d submission(s)\n\n", len(records))
}
