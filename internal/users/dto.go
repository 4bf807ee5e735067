package users

import (
	"time"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
)

// UserView is the transport shape that omits credentials.
type UserView struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Roles       []string   `json:"roles"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateUserInput holds the validated payload to register a team member.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Roles    []string
}

// FromModel projects a user row into its transport shape.
func FromModel(user *models.User) *UserView {
	if user == nil {
		return nil
	}
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}
	return &UserView{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Roles:       roles,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
