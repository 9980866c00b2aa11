package domain

import (
	"time"
)

type Role string

const (
	RoleViewer        Role = "viewer"
	RoleCoordinator   Role = "coordinator"
	RoleAdministrator Role = "administrator"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
