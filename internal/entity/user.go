package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
	RoleMarketer Role = "MARKETER"
	RoleManager  Role = "MANAGER"
)

var ErrUserNotFound = errors.New("user not found")

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleMarketer, RoleManager:
		return true
	}
	return false
}

type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewUser(username, email string, role Role) (*User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	if role == "" {
		role = RoleOperator
	}
	if !role.Valid() {
		return nil, errors.New("unknown role: " + string(role))
	}
	return &User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }
func (u *User) IsOperator() bool { return u.Role == RoleOperator }
func (u *User) IsMarketer() bool { return u.Role == RoleMarketer }
func (u *User) IsManager() bool  { return u.Role == RoleManager }
