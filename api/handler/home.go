package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yuzuhara/betbook/api/auth"
	"github.com/yuzuhara/betbook/ledger"
)

// Home shows the signed-in user's balance and bet history, newest first.
func (h *Handler) Home(c *gin.Context) {
	userID := auth.UserID(c)

	user, err := h.db.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	bets, err := h.db.ListBetsByUser(c.Request.Context(), userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Username":     user.Username,
		"TotalBalance": ledger.TotalBalance(bets),
		"Bets": newBetViews(bets, func(amount int64) string {
			return strconv.FormatInt(amount, 10)
		}),
	})
}

// Koinushi renders the static employer landing page.
func (h *Handler) Koinushi(c *gin.Context) {
	user, err := h.db.GetUserByID(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.HTML(http.StatusOK, "koinushi.html", gin.H{"Username": user.Username})
}
