// Package handler contains the gin request handlers, one group per page.
package handler

import (
	"github.com/yuzuhara/betbook/database"
)

// timestampFormat is how bet timestamps are rendered on all pages.
const timestampFormat = "2006-01-02 15:04:05"

type Handler struct {
	db *database.Client
}

func New(db *database.Client) *Handler {
	return &Handler{db: db}
}

// betView is a bet row prepared for template rendering.
type betView struct {
	Timestamp string
	Result    database.BetResult
	Rule      string
	Amount    string
}

func newBetViews(bets []database.Bet, formatAmount func(int64) string) []betView {
	views := make([]betView, 0, len(bets))
	for _, bet := range bets {
		views = append(views, betView{
			Timestamp: bet.CreatedAt.Format(timestampFormat),
			Result:    bet.Result,
			Rule:      bet.Rule,
			Amount:    formatAmount(bet.Amount),
		})
	}
	return views
}
