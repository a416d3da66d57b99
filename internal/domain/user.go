package domain

import "time"

type UserRole string

const (
	RoleParent UserRole = "parent"
	RoleTutor  UserRole = "tutor"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID           string
	Role         UserRole
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

type UserRepository interface {
	CreateUser(user *User) error
	GetUserByID(userID string) (*User, error)
	GetUserByEmail(email string) (*User, error)
}
