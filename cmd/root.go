package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/THEN01EXPLORER/ChainCompass-AI/config"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/client"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/wallet"
)

var rootCmd = &cobra.Command{
	Use:   "chaincompass",
	Short: "A CLI for cross-chain token swap quotes and execution",
	Long: `chaincompass finds the best route for a cross-chain token swap, shows
you the quote, and optionally submits it for execution.

Examples:
  chaincompass swap 100 USDC on polygon to ETH on arbitrum
  chaincompass swap 1.5 ETH on ethereum to USDC on base --execute
  chaincompass compare 100 USDC on polygon to ETH
  chaincompass wallet connect 0xYourAddress
  chaincompass history`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

// newAPIClient builds the backend client from configuration. With --verbose
// every API round trip is logged to stderr.
func newAPIClient(cmd *cobra.Command) (*client.Client, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return client.NewWithClient(cfg.BaseURL, client.NewVerboseClient(cfg.QuoteTimeout, os.Stderr)), cfg
	}
	return client.New(cfg.BaseURL), cfg
}

// openWalletStore opens the wallet file in the user's home directory.
func openWalletStore() (*wallet.Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return wallet.NewStore(filepath.Join(home, wallet.DefaultStoreFileName))
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}
