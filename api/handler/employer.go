package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/yuzuhara/betbook/api/auth"
	"github.com/yuzuhara/betbook/database"
	"github.com/yuzuhara/betbook/ledger"
)

const (
	msgNoEmployees  = "あなたにはまだバイトが登録されていません。"
	msgInviteSelf   = "自分自身を招待することはできません。"
	msgAlreadySent  = "既に招待を送っています。"
	msgUserNotFound = "招待先のユーザーが見つかりません。"
)

// employerBetView is a bet row of the aggregated employee history.
type employerBetView struct {
	Timestamp        string
	EmployeeUsername string
	Result           database.BetResult
	Rule             string
	Amount           string
}

// EmployerHistory aggregates every employee's bets into one list, newest
// first, with amounts in oku/man grouping.
func (h *Handler) EmployerHistory(c *gin.Context) {
	userID := auth.UserID(c)
	ctx := c.Request.Context()

	employer, err := h.db.GetUserByID(ctx, userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	employees, err := h.db.ListEmployees(ctx, userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	if len(employees) == 0 {
		c.String(http.StatusOK, msgNoEmployees)
		return
	}

	usernames := lo.SliceToMap(employees, func(u database.User) (uint, string) {
		return u.ID, u.Username
	})
	bets, err := h.db.ListBetsByUsers(ctx, lo.Map(employees, func(u database.User, _ int) uint {
		return u.ID
	}))
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	rows := make([]employerBetView, 0, len(bets))
	for _, bet := range bets {
		rows = append(rows, employerBetView{
			Timestamp:        bet.CreatedAt.Format(timestampFormat),
			EmployeeUsername: usernames[bet.UserID],
			Result:           bet.Result,
			Rule:             bet.Rule,
			Amount:           ledger.FormatManOku(bet.Amount),
		})
	}

	c.HTML(http.StatusOK, "employer_history.html", gin.H{
		"Username": employer.Username,
		"Bets":     rows,
	})
}

// EmployerInvite lists invite candidates: everyone except the employer and
// their current employees.
func (h *Handler) EmployerInvite(c *gin.Context) {
	userID := auth.UserID(c)
	ctx := c.Request.Context()

	employer, err := h.db.GetUserByID(ctx, userID)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	candidates, err := h.db.ListInviteCandidates(ctx, userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.HTML(http.StatusOK, "employer_invite.html", gin.H{
		"Username":   employer.Username,
		"Candidates": candidates,
	})
}

// SendInvite creates a pending invitation for the target user. Guards run
// in order: self-invite, existing invitation of any status, both parties
// exist. Note the existence check doesn't filter by status, so a rejected
// pair can never be re-invited.
func (h *Handler) SendInvite(c *gin.Context) {
	employerID := auth.UserID(c)
	ctx := c.Request.Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, msgUserNotFound)
		return
	}
	employeeID := uint(id)

	if employerID == employeeID {
		c.String(http.StatusOK, msgInviteSelf)
		return
	}

	exists, err := h.db.HasInvitation(ctx, employerID, employeeID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	if exists {
		c.String(http.StatusOK, msgAlreadySent)
		return
	}

	if _, err := h.db.GetUserByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusOK, msgUserNotFound)
			return
		}
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := h.db.GetUserByID(ctx, employerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusOK, msgUserNotFound)
			return
		}
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	if _, err := h.db.CreateInvitation(ctx, employerID, employeeID); err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusFound, "/employer/invite")
}
