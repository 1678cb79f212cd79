package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"instashare-backend/config"
	"instashare-backend/internal/model"
	"instashare-backend/internal/util"

	"github.com/jmoiron/sqlx"
)

type RoleRepository struct {
	*config.Database
}

func NewRoleRepository(database *config.Database) *RoleRepository {
	return &RoleRepository{database}
}

func (r *RoleRepository) FindByName(ctx context.Context, exec sqlx.ExtContext, roleName string) (*model.Role, error) {
	query := `SELECT id, role_name, description, created_at FROM roles WHERE role_name = $1 AND deleted_at IS NULL`
	var role model.Role
	err := sqlx.GetContext(ctx, exec, &role, query, roleName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[RoleRepo] роль %s: %w", roleName, model.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[RoleRepo] не удалось найти роль", err)
	}
	return &role, nil
}

// AssignRole : назначает роль, повторное назначение восстанавливает снятую роль
func (r *RoleRepository) AssignRole(ctx context.Context, exec sqlx.ExtContext, roleID int64, userUUID string) error {
	query := `
		INSERT INTO user_roles (role_id, user_uuid, assigned_date)
		VALUES ($1, $2, NOW())
		ON CONFLICT (role_id, user_uuid) DO UPDATE
		SET deleted_at = NULL, updated_at = NOW()
	`
	if _, err := exec.ExecContext(ctx, query, roleID, userUUID); err != nil {
		return util.LogError("[RoleRepo] не удалось назначить роль", err)
	}
	return nil
}

func (r *RoleRepository) ListUserRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.UserRole, error) {
	query := `
		SELECT ur.id, ur.role_id, r.role_name, ur.user_uuid, ur.assigned_date
		FROM user_roles AS ur
		INNER JOIN roles AS r ON r.id = ur.role_id
		WHERE ur.user_uuid = $1 AND ur.deleted_at IS NULL AND r.deleted_at IS NULL
		ORDER BY ur.assigned_date ASC
	`
	roles := []model.UserRole{}
	if err := sqlx.SelectContext(ctx, exec, &roles, query, userUUID); err != nil {
		return nil, util.LogError("[RoleRepo] не удалось получить роли пользователя", err)
	}
	return roles, nil
}

func (r *RoleRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, tx.Rollback, tx.Commit, nil
}
