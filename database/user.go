package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents a registered user.
// EmployerID is a nullable self-reference to the user this user currently
// works for. The employer/employee link is purely a data relation and is
// resolved by query, never preloaded as an object graph.
type User struct {
	gorm.Model
	Username   string `gorm:"uniqueIndex;not null"`
	Password   string `gorm:"not null"` // bcrypt hash
	EmployerID *uint  `gorm:"index"`
}

func (c *Client) CreateUser(ctx context.Context, username, hashedPassword string) (*User, error) {
	user := User{
		Username: username,
		Password: hashedPassword,
	}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		log.Error("failed to create user", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by ID", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by username", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

// ListEmployees returns all users whose employer is the given user,
// ordered by id.
func (c *Client) ListEmployees(ctx context.Context, employerID uint) ([]User, error) {
	var users []User
	if err := c.db.WithContext(ctx).Where("employer_id = ?", employerID).Order("id").Find(&users).Error; err != nil {
		log.Error("failed to list employees", "error", err)
		return nil, err
	}
	return users, nil
}

// ListInviteCandidates returns every user except the employer themself and
// the employer's current employees. Users working for somebody else and
// users with an open invitation are still listed.
func (c *Client) ListInviteCandidates(ctx context.Context, employerID uint) ([]User, error) {
	var users []User
	if err := c.db.WithContext(ctx).
		Where("id <> ?", employerID).
		Where("employer_id IS NULL OR employer_id <> ?", employerID).
		Order("id").
		Find(&users).Error; err != nil {
		log.Error("failed to list invite candidates", "error", err)
		return nil, err
	}
	return users, nil
}
