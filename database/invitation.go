package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Invitation is a directed employment proposal from an employer to an
// employee. It starts pending and transitions exactly once to accepted or
// rejected; both states are terminal.
type Invitation struct {
	gorm.Model
	EmployerID uint             `gorm:"index;not null"`
	EmployeeID uint             `gorm:"index;not null"`
	Status     InvitationStatus `gorm:"not null;default:pending"`
}

func (c *Client) CreateInvitation(ctx context.Context, employerID, employeeID uint) (*Invitation, error) {
	inv := Invitation{
		EmployerID: employerID,
		EmployeeID: employeeID,
		Status:     InvitationStatusPending,
	}
	if err := c.db.WithContext(ctx).Create(&inv).Error; err != nil {
		log.Error("failed to create invitation", "error", err)
		return nil, err
	}
	return &inv, nil
}

func (c *Client) GetInvitationByID(ctx context.Context, id uint) (*Invitation, error) {
	var inv Invitation
	if err := c.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get invitation by ID", "error", err)
		}
		return nil, err
	}
	return &inv, nil
}

// HasInvitation reports whether any invitation exists for the given
// employer/employee pair, regardless of status. A rejected or accepted
// record therefore blocks re-invitation of the same pair.
func (c *Client) HasInvitation(ctx context.Context, employerID, employeeID uint) (bool, error) {
	var inv Invitation
	err := c.db.WithContext(ctx).
		Where("employer_id = ? AND employee_id = ?", employerID, employeeID).
		First(&inv).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	log.Error("failed to check for existing invitation", "error", err)
	return false, err
}

// ListPendingInvitations returns the still-pending invitations addressed
// to the given employee, oldest first.
func (c *Client) ListPendingInvitations(ctx context.Context, employeeID uint) ([]Invitation, error) {
	var invs []Invitation
	if err := c.db.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, InvitationStatusPending).
		Order("created_at").
		Find(&invs).Error; err != nil {
		log.Error("failed to list pending invitations", "error", err)
		return nil, err
	}
	return invs, nil
}

// AcceptInvitation marks the invitation accepted and points the employee
// at the employer, in a single transaction. An employee who already works
// for somebody else is silently re-assigned.
func (c *Client) AcceptInvitation(ctx context.Context, inv *Invitation) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&User{}).
			Where("id = ?", inv.EmployeeID).
			Update("employer_id", inv.EmployerID).Error; err != nil {
			return err
		}
		return tx.Model(inv).Update("status", InvitationStatusAccepted).Error
	})
	if err != nil {
		log.Error("failed to accept invitation", "error", err, "invitation", inv.ID)
		return err
	}
	return nil
}

// RejectInvitation marks the invitation rejected. Nothing else changes.
func (c *Client) RejectInvitation(ctx context.Context, inv *Invitation) error {
	if err := c.db.WithContext(ctx).Model(inv).Update("status", InvitationStatusRejected).Error; err != nil {
		log.Error("failed to reject invitation", "error", err, "invitation", inv.ID)
		return err
	}
	return nil
}
