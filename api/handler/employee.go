package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yuzuhara/betbook/api/auth"
	"github.com/yuzuhara/betbook/database"
)

const msgPartyNotFound = "雇い主または従業員の情報が見つかりませんでした。"

// invitationView is a pending invitation prepared for rendering.
type invitationView struct {
	ID               uint
	EmployerUsername string
	CreatedAt        string
}

// EmployeeInvitations lists the signed-in user's pending invitations.
// Accepted and rejected ones never show up here again.
func (h *Handler) EmployeeInvitations(c *gin.Context) {
	userID := auth.UserID(c)
	ctx := c.Request.Context()

	user, err := h.db.GetUserByID(ctx, userID)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	invitations, err := h.db.ListPendingInvitations(ctx, userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	views := make([]invitationView, 0, len(invitations))
	for _, inv := range invitations {
		employer, err := h.db.GetUserByID(ctx, inv.EmployerID)
		if err != nil {
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		views = append(views, invitationView{
			ID:               inv.ID,
			EmployerUsername: employer.Username,
			CreatedAt:        inv.CreatedAt.Format(timestampFormat),
		})
	}

	c.HTML(http.StatusOK, "employee_invitations.html", gin.H{
		"Username":    user.Username,
		"Invitations": views,
	})
}

// requestedInvitation loads the invitation addressed by the route and
// checks it belongs to the caller and is still pending. Any failure is a
// silent redirect back to the invitations list.
func (h *Handler) requestedInvitation(c *gin.Context) *database.Invitation {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Redirect(http.StatusFound, "/employee/invitations")
		return nil
	}
	inv, err := h.db.GetInvitationByID(c.Request.Context(), uint(id))
	if err != nil || inv.EmployeeID != auth.UserID(c) || inv.Status != database.InvitationStatusPending {
		c.Redirect(http.StatusFound, "/employee/invitations")
		return nil
	}
	return inv
}

// AcceptInvite makes the inviter the caller's employer and marks the
// invitation accepted in one commit. An existing employer is silently
// replaced.
func (h *Handler) AcceptInvite(c *gin.Context) {
	inv := h.requestedInvitation(c)
	if inv == nil {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.db.GetUserByID(ctx, inv.EmployerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusOK, msgPartyNotFound)
			return
		}
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.db.AcceptInvitation(ctx, inv); err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusFound, "/employee/invitations")
}

// RejectInvite flips the invitation to rejected; no other state changes.
func (h *Handler) RejectInvite(c *gin.Context) {
	inv := h.requestedInvitation(c)
	if inv == nil {
		return
	}
	if err := h.db.RejectInvitation(c.Request.Context(), inv); err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusFound, "/employee/invitations")
}
