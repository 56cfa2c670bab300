package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the connected wallet",
	Long: `Manage the wallet address used for swap execution.

The connected address is stored locally and reused across invocations.

Examples:
  chaincompass wallet connect 0xYourAddress
  chaincompass wallet show
  chaincompass wallet disconnect`,
}

var walletConnectCmd = &cobra.Command{
	Use:   "connect <address>",
	Short: "Connect a wallet address",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openWalletStore()
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		if err := store.Connect(args[0]); err != nil {
			printError(err)
			os.Exit(1)
		}

		address, _ := store.Address()
		color.Green("\n✓ Wallet connected")
		fmt.Printf("  Address: %s\n\n", color.CyanString(address))
	},
}

var walletDisconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the current wallet",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openWalletStore()
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		if err := store.Disconnect(); err != nil {
			printError(err)
			os.Exit(1)
		}

		printSuccess("Wallet disconnected.")
	},
}

var walletShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the connected wallet address",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openWalletStore()
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		address, connected := store.Address()
		if !connected {
			fmt.Println("\nNo wallet connected. Run: chaincompass wallet connect <address>")
			fmt.Println()
			return
		}

		fmt.Printf("\nConnected wallet: %s\n\n", color.CyanString(address))
	},
}

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletConnectCmd)
	walletCmd.AddCommand(walletDisconnectCmd)
	walletCmd.AddCommand(walletShowCmd)
}
