// Package ledger holds the pure bookkeeping helpers: balance accumulation
// over a user's bet history and the oku/man display grouping for large
// amounts.
package ledger

import (
	"fmt"

	"github.com/yuzuhara/betbook/database"
)

const (
	oku = 100_000_000
	man = 10_000
)

// TotalBalance computes the net balance of a bet history: wins add their
// amount, losses subtract it, any other result tag contributes nothing.
func TotalBalance(bets []database.Bet) int64 {
	var total int64
	for _, bet := range bets {
		switch bet.Result {
		case database.BetResultWin:
			total += bet.Amount
		case database.BetResultLoss:
			total -= bet.Amount
		}
	}
	return total
}

// FormatManOku renders an amount grouped into 億 (10^8) and 万 (10^4)
// units, the man component zero-padded to four digits. Remainders below
// 10^4 are truncated, so this is a display transform only.
func FormatManOku(amount int64) string {
	return fmt.Sprintf("%d億%04d万", amount/oku, (amount%oku)/man)
}

// Amount combines oku and man input units into the smallest currency unit.
func Amount(okuUnits, manUnits int64) int64 {
	return okuUnits*oku + manUnits*man
}
