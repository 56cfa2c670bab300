package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/client"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/parser"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/session"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/submit"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/types"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/wallet"
)

var (
	fromChain   string
	toChain     string
	doExecute   bool
	showDetails bool
	noConfirm   bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <token> on <chain> to <token> on <chain>",
	Short: "Quote a cross-chain token swap, optionally executing it",
	Long: `Quote a cross-chain token swap and display the best route found.

By default only a quote is shown. Pass --execute to submit the quoted swap;
execution requires a connected wallet (see 'chaincompass wallet connect').

Examples:
  # Quote only
  chaincompass swap 100 USDC on polygon to ETH on arbitrum

  # Quote with per-hop route details
  chaincompass swap 100 USDC on polygon to ETH on arbitrum --detailed

  # Quote and execute, skipping the confirmation prompt
  chaincompass swap 1.5 ETH on ethereum to USDC on base --execute --yes`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().StringVar(&fromChain, "from-chain", "", "Source blockchain (overrides 'on <chain>')")
	swapCmd.Flags().StringVar(&toChain, "to-chain", "", "Destination blockchain (overrides 'on <chain>')")
	swapCmd.Flags().BoolVar(&doExecute, "execute", false, "Submit the quoted swap for execution")
	swapCmd.Flags().BoolVar(&showDetails, "detailed", false, "Show per-hop route details")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func runSwap(cmd *cobra.Command, args []string) {
	commandStr := strings.Join(args, " ")
	intent, err := parser.ParseSwapCommand(commandStr)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Flags win over the parsed command
	if fromChain != "" {
		intent.FromChain = fromChain
	}
	if toChain != "" {
		intent.ToChain = toChain
	}
	if err := parser.ValidateSwapIntent(intent); err != nil {
		printError(err)
		os.Exit(1)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient, cfg := newAPIClient(cmd)
	quoter := client.NewQuoter(apiClient)

	store, err := openWalletStore()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	walletSrc := wallet.NewFallbackSource(store, cfg.WalletAddress)

	sess := session.New(quoter, submit.New(apiClient), walletSrc)
	sess.SetGracePeriod(cfg.GracePeriod)
	defer sess.Close()

	if err := sess.SetIntent(*intent); err != nil {
		printError(err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Get quote with spinner
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Finding best route..."
		s.Start()
	}

	quote, err := sess.FindRoute(ctx)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		output := map[string]interface{}{
			"from_amount":       intent.HumanAmount,
			"from_token":        intent.FromToken,
			"from_chain":        intent.FromChain,
			"to_token":          intent.ToToken,
			"to_chain":          intent.ToChain,
			"output_usd":        quote.OutputUSD,
			"fees_usd":          quote.FeesUSD,
			"time_estimate_sec": quote.ETASeconds,
			"provider":          quote.ProviderName,
			"summary":           quote.SummaryText,
			"status":            string(sess.Snapshot().Status),
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayQuote(&quote, intent)
	}

	if showDetails {
		showDetailedRoute(ctx, quoter, apiClient, intent, jsonOutput)
	}

	if !doExecute {
		if !jsonOutput {
			fmt.Println("Run again with --execute to submit this swap.")
			fmt.Println()
		}
		return
	}

	if _, connected := walletSrc.Address(); !connected {
		printError(fmt.Errorf("no wallet connected. Run: chaincompass wallet connect <address>"))
		os.Exit(1)
	}

	if !noConfirm && !jsonOutput {
		if !confirmSwap() {
			fmt.Println("\nSwap cancelled.")
			os.Exit(0)
		}
	}

	if !jsonOutput {
		s.Suffix = " Submitting swap..."
		s.Start()
	}

	id, err := sess.Execute(ctx)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(map[string]string{
			"submission_id": id,
			"status":        string(session.StatusExecuted),
		}, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	color.Green("\n✓ Swap submitted!")
	fmt.Printf("  Submission ID: %s\n\n", color.CyanString(id))
	fmt.Println("You can review your submissions using:")
	color.Cyan("  chaincompass history\n")
}

func showDetailedRoute(ctx context.Context, quoter *client.Quoter, apiClient *client.Client, intent *types.SwapIntent, jsonOutput bool) {
	params, err := quoter.BuildParams(*intent)
	if err != nil {
		return
	}

	detailed, err := apiClient.GetDetailedQuote(ctx, params)
	if err != nil {
		if !jsonOutput {
			color.Yellow("Route details unavailable: %v\n", err)
		}
		return
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(detailed, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	if len(detailed.RouteSteps) == 0 {
		return
	}

	color.Cyan("ROUTE STEPS")
	fmt.Println(strings.Repeat("-", 60))
	for i, step := range detailed.RouteSteps {
		fmt.Printf("  %d. %-14s %s", i+1, step.Tool,
			color.YellowString("%s (%s)", step.FromToken, step.FromChain))
		fmt.Printf(" -> %s", color.YellowString("%s (%s)", step.ToToken, step.ToChain))
		if step.EstimatedTime > 0 {
			fmt.Printf("  ~%ds", step.EstimatedTime)
		}
		fmt.Println()
	}
	fmt.Println()
}

func displayQuote(quote *types.QuoteResult, intent *types.SwapIntent) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  From:              %s %s on %s\n", intent.HumanAmount,
		color.YellowString(intent.FromToken), intent.FromChain)
	fmt.Printf("  To:                %s on %s\n", color.YellowString(intent.ToToken), intent.ToChain)
	fmt.Printf("  Output:            ~$%.4f\n", quote.OutputUSD)
	fmt.Printf("  Fees:              $%.4f\n", quote.FeesUSD)
	if quote.GasCostUSD > 0 {
		fmt.Printf("  Gas Cost:          $%.4f\n", quote.GasCostUSD)
	}
	if quote.PriceImpact != 0 {
		fmt.Printf("  Price Impact:      %.2f%%\n", quote.PriceImpact)
	}
	fmt.Printf("  Estimated Time:    %d seconds\n", quote.ETASeconds)
	fmt.Printf("  Provider:          %s\n", color.CyanString(quote.ProviderName))
	fmt.Printf("\n  %s\n", quote.SummaryText)

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}

func confirmSwap() bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("\nProceed with swap? (y/N): ")

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
