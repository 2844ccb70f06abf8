package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleStaff    UserRole = "staff"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:254;uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name" gorm:"size:35"`
	LastName     string    `json:"last_name" gorm:"size:35"`
	Role         UserRole  `json:"role" gorm:"size:12"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsStaff() bool { return u.Role == RoleStaff }
