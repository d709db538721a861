package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Bet records a single win or loss event for a user.
// The creation timestamp (gorm.Model.CreatedAt, server clock) is the
// event time. Bets are immutable: no handler updates or deletes them.
type Bet struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Result BetResult `gorm:"not null"`
	Rule   string    `gorm:"not null"`
	Amount int64     `gorm:"not null"` // smallest currency unit
}

func (c *Client) CreateBet(ctx context.Context, bet *Bet) error {
	if err := c.db.WithContext(ctx).Create(bet).Error; err != nil {
		log.Error("failed to create bet", "error", err)
		return err
	}
	return nil
}

// ListBetsByUser returns all bets of a user, newest first.
func (c *Client) ListBetsByUser(ctx context.Context, userID uint) ([]Bet, error) {
	var bets []Bet
	if err := c.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&bets).Error; err != nil {
		log.Error("failed to list bets", "error", err)
		return nil, err
	}
	return bets, nil
}

// ListBetsByUsers returns all bets of the given users, newest first.
// An empty id list yields an empty result.
func (c *Client) ListBetsByUsers(ctx context.Context, userIDs []uint) ([]Bet, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var bets []Bet
	if err := c.db.WithContext(ctx).Where("user_id IN ?", userIDs).Order("created_at DESC").Find(&bets).Error; err != nil {
		log.Error("failed to list bets for users", "error", err)
		return nil, err
	}
	return bets, nil
}
