// Package amount converts between human-readable decimal amounts and the
// integer base-unit strings the quote service expects.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidAmount is returned for input that does not parse as a
// non-negative decimal number.
var ErrInvalidAmount = errors.New("invalid amount")

const maxDecimals = 18

// ToBaseUnits converts a decimal string into its base-unit integer string
// (amount * 10^decimals). Fractional digits beyond the token's precision are
// truncated, never rounded up, so the caller can never overpay.
func ToBaseUnits(human string, decimals int) (string, error) {
	if decimals < 0 || decimals > maxDecimals {
		return "", fmt.Errorf("%w: unsupported precision %d", ErrInvalidAmount, decimals)
	}

	whole, frac, err := splitDecimal(human)
	if err != nil {
		return "", err
	}

	// Pad or truncate the fractional part to exactly `decimals` digits.
	if len(frac) > decimals {
		frac = frac[:decimals]
	} else {
		frac += strings.Repeat("0", decimals-len(frac))
	}

	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, human)
	}

	return n.String(), nil
}

// FromBaseUnits converts a base-unit integer string back into a decimal
// string for display. Trailing fractional zeros are trimmed; the result is a
// display value and need not round-trip the original input exactly.
func FromBaseUnits(base string, decimals int) (string, error) {
	if decimals < 0 || decimals > maxDecimals {
		return "", fmt.Errorf("%w: unsupported precision %d", ErrInvalidAmount, decimals)
	}

	n, ok := new(big.Int).SetString(strings.TrimSpace(base), 10)
	if !ok || n.Sign() < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, base)
	}

	digits := n.String()
	if decimals == 0 {
		return digits, nil
	}

	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-decimals]
	frac := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if frac == "" {
		return whole, nil
	}
	return whole + "." + frac, nil
}

// splitDecimal validates a decimal string and returns its whole and
// fractional digit runs.
func splitDecimal(s string) (whole, frac string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if strings.HasPrefix(s, "-") {
		return "", "", fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, s)
	}
	s = strings.TrimPrefix(s, "+")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	whole = parts[0]
	if len(parts) == 2 {
		frac = parts[1]
	}
	if whole == "" && frac == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if whole == "" {
		whole = "0"
	}

	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}

	return whole, frac, nil
}
