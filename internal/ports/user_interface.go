package ports

import (
	"context"
	"instashare-backend/internal/model"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error)
}

type RoleRepository interface {
	FindByName(ctx context.Context, exec sqlx.ExtContext, roleName string) (*model.Role, error)
	AssignRole(ctx context.Context, exec sqlx.ExtContext, roleID int64, userUUID string) error
	ListUserRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.UserRole, error)
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type UserService interface {
	GetUser(ctx context.Context, userUUID string) (*model.User, error)
	AssignRole(ctx context.Context, userUUID, roleName string) error
	ListUserRoles(ctx context.Context, userUUID string) ([]model.UserRole, error)
}
