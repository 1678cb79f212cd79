package repository

import (
	"context"
	"instashare-backend/config"
	"instashare-backend/internal/model"
	"instashare-backend/internal/util"

	"github.com/jmoiron/sqlx"
)

type ShareRepository struct {
	database *config.Database
}

func NewShareRepository(database *config.Database) *ShareRepository {
	return &ShareRepository{database: database}
}

// AddShare : открывает пользователю доступ к документу, повторный вызов восстанавливает отозванный доступ
func (r *ShareRepository) AddShare(ctx context.Context, exec sqlx.ExtContext, documentUUID, userUUID string) error {
	query := `
		INSERT INTO documents_shared (document_uuid, user_uuid, shared_date)
		VALUES ($1, $2, NOW())
		ON CONFLICT (document_uuid, user_uuid) DO UPDATE
		SET deleted_at = NULL, updated_at = NOW()
	`
	if _, err := exec.ExecContext(ctx, query, documentUUID, userUUID); err != nil {
		return util.LogError("[ShareRepo] не удалось предоставить доступ к документу", err)
	}
	return nil
}

// ListSharedUsers : пользователи, которым открыт документ
func (r *ShareRepository) ListSharedUsers(ctx context.Context, exec sqlx.ExtContext, documentUUID string) ([]model.SharedUser, error) {
	query := `
		SELECT u.uuid, u.name, u.email, u.phone, s.shared_date
		FROM documents_shared AS s
		INNER JOIN users AS u ON u.uuid = s.user_uuid
		WHERE s.document_uuid = $1 AND s.deleted_at IS NULL AND u.deleted_at IS NULL
		ORDER BY s.shared_date ASC
	`
	users := []model.SharedUser{}
	if err := sqlx.SelectContext(ctx, exec, &users, query, documentUUID); err != nil {
		return nil, util.LogError("[ShareRepo] не удалось получить список пользователей документа", err)
	}
	return users, nil
}

// HasAccess : true, если юзер владелец или есть в documents_shared
func (r *ShareRepository) HasAccess(ctx context.Context, exec sqlx.ExtContext, documentUUID, userUUID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM documents AS d
			LEFT JOIN documents_shared AS s
			  ON d.uuid = s.document_uuid
			 AND s.user_uuid = $2
			 AND s.deleted_at IS NULL
			WHERE d.uuid = $1
			  AND d.deleted_at IS NULL
			  AND (d.owner_uuid = $2 OR s.user_uuid IS NOT NULL)
		)
	`
	var exists bool
	if err := sqlx.GetContext(ctx, exec, &exists, query, documentUUID, userUUID); err != nil {
		return false, util.LogError("[ShareRepo] ошибка проверки доступа", err)
	}
	return exists, nil
}
