package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MatchingMethod determines which open lot a closing trade consumes first.
type MatchingMethod string

const (
	FIFO MatchingMethod = "fifo"
	LIFO MatchingMethod = "lifo"
)

// ResolveMethod maps a user-supplied method string to a MatchingMethod.
// Anything other than "lifo" (case and whitespace insensitive) is fifo;
// an unrecognized value is a recoverable configuration error, never surfaced.
func ResolveMethod(method string) MatchingMethod {
	if strings.ToLower(strings.TrimSpace(method)) == "lifo" {
		return LIFO
	}
	return FIFO
}

var (
	// lotEpsilon absorbs division residue from fractional quantities when
	// deciding whether a lot has been fully consumed.
	lotEpsilon = decimal.New(1, -9)

	// winLossTolerance is the band around zero within which a day's net
	// realized P/L counts as neither a win nor a loss.
	winLossTolerance = decimal.New(5, -3)
)
