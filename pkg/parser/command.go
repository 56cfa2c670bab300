package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/registry"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/types"
)

// ParseSwapCommand parses a natural language swap command
// Examples:
//   - "swap 100 USDC on polygon to ETH on arbitrum"
//   - "1.5 eth on ethereum to usdc on base"
//   - "100 USDC to ETH on arbitrum" (source chain defaults to ethereum)
func ParseSwapCommand(command string) (*types.SwapIntent, error) {
	normalized := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(command))), " ")
	normalized = strings.TrimPrefix(normalized, "swap ")

	// Pattern: <amount> <token> [on <chain>] to <token> [on <chain>]
	pattern := regexp.MustCompile(`^(\d*\.?\d+)\s+([a-z0-9]+)(?:\s+on\s+([a-z0-9 ]+?))?\s+to\s+([a-z0-9]+)(?:\s+on\s+([a-z0-9 ]+?))?$`)

	matches := pattern.FindStringSubmatch(normalized)
	if matches == nil {
		return nil, fmt.Errorf("invalid swap command format. Expected: 'swap <amount> <token> on <chain> to <token> on <chain>' (e.g., 'swap 100 USDC on polygon to ETH on arbitrum')")
	}

	intent := &types.SwapIntent{
		HumanAmount: matches[1],
		FromToken:   strings.ToUpper(matches[2]),
		FromChain:   matches[3],
		ToToken:     strings.ToUpper(matches[4]),
		ToChain:     matches[5],
	}
	if intent.FromChain == "" {
		intent.FromChain = "ethereum"
	}
	if intent.ToChain == "" {
		intent.ToChain = intent.FromChain
	}

	return intent, ValidateSwapIntent(intent)
}

// ValidateSwapIntent checks that every selection names a known chain and
// token. The amount itself is validated at conversion time.
func ValidateSwapIntent(intent *types.SwapIntent) error {
	if intent.HumanAmount == "" {
		return fmt.Errorf("amount is required")
	}
	if _, err := registry.ResolveChain(intent.FromChain); err != nil {
		return fmt.Errorf("source chain %q: %w", intent.FromChain, err)
	}
	if _, err := registry.ResolveChain(intent.ToChain); err != nil {
		return fmt.Errorf("destination chain %q: %w", intent.ToChain, err)
	}
	if _, err := registry.ResolveToken(intent.FromToken); err != nil {
		return fmt.Errorf("source token %q: %w", intent.FromToken, err)
	}
	if _, err := registry.ResolveToken(intent.ToToken); err != nil {
		return fmt.Errorf("destination token %q: %w", intent.ToToken, err)
	}
	return nil
}
