package handler

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/yuzuhara/betbook/api/auth"
	"github.com/yuzuhara/betbook/database"
	"github.com/yuzuhara/betbook/ledger"
)

// Bait shows the wager entry page: the same history as the home page, the
// balance in oku/man grouping, and the employer's name if the user works
// for somebody.
func (h *Handler) Bait(c *gin.Context) {
	userID := auth.UserID(c)
	ctx := c.Request.Context()

	user, err := h.db.GetUserByID(ctx, userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	bets, err := h.db.ListBetsByUser(ctx, userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	var employerName string
	if user.EmployerID != nil {
		employer, err := h.db.GetUserByID(ctx, *user.EmployerID)
		if err != nil {
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		employerName = employer.Username
	}

	c.HTML(http.StatusOK, "bait.html", gin.H{
		"Username":     user.Username,
		"Employer":     employerName,
		"TotalBalance": ledger.FormatManOku(ledger.TotalBalance(bets)),
		"Bets": newBetViews(bets, func(amount int64) string {
			return strconv.FormatInt(amount, 10)
		}),
	})
}

// RecordBait creates a bet from the submitted form and redirects back to
// the entry page, so a refresh never resubmits.
func (h *Handler) RecordBait(c *gin.Context) {
	userID := auth.UserID(c)

	result := c.PostForm("result")
	rule := c.PostForm("rule")

	okuUnits, err := strconv.ParseInt(c.DefaultPostForm("oku", "0"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid amount")
		return
	}
	manUnits, err := strconv.ParseInt(c.DefaultPostForm("man", "0"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid amount")
		return
	}
	amount := ledger.Amount(okuUnits, manUnits)

	log.Debug("recording bet", "user", userID, "result", result, "rule", rule, "oku", okuUnits, "man", manUnits, "amount", amount)

	bet := database.Bet{
		UserID: userID,
		Result: database.BetResult(result),
		Rule:   rule,
		Amount: amount,
	}
	if err := h.db.CreateBet(c.Request.Context(), &bet); err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Redirect(http.StatusFound, "/bait")
}
