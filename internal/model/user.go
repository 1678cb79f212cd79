package model

import "time"

type User struct {
	UUID           string     `db:"uuid" json:"uuid"`
	Name           string     `db:"name" json:"name"`
	Email          string     `db:"email" json:"email"`
	Phone          *string    `db:"phone" json:"phone,omitempty"`
	Responsability *string    `db:"responsability" json:"responsability,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

type Role struct {
	ID          int64     `db:"id" json:"id"`
	RoleName    string    `db:"role_name" json:"role_name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type UserRole struct {
	ID           int64     `db:"id" json:"id"`
	RoleID       int64     `db:"role_id" json:"role_id"`
	RoleName     string    `db:"role_name" json:"role_name"`
	UserUUID     string    `db:"user_uuid" json:"user_uuid"`
	AssignedDate time.Time `db:"assigned_date" json:"assigned_date"`
}
