package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"instashare-backend/config"
	"instashare-backend/internal/model"
	"instashare-backend/internal/util"
)

type LogRepository struct {
	*config.Database
}

func NewLogRepository(database *config.Database) *LogRepository {
	return &LogRepository{database}
}

// Create : добавляет запись в журнал, записи никогда не меняются
func (r *LogRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	query := `
		INSERT INTO logs (event, user_uuid, event_description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowxContext(ctx, query, entry.Event, entry.UserUUID, entry.EventDescription).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return util.LogError("[LogRepo] не удалось записать событие", err)
	}
	return nil
}

func (r *LogRepository) GetByID(ctx context.Context, id int64) (*model.LogEntry, error) {
	query := `SELECT id, event, user_uuid, event_description, created_at FROM logs WHERE id = $1`
	var entry model.LogEntry
	err := r.DB.GetContext(ctx, &entry, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[LogRepo] запись %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[LogRepo] не удалось получить запись журнала", err)
	}
	return &entry, nil
}

// FindByUser : записи пользователя, новые первыми
func (r *LogRepository) FindByUser(ctx context.Context, userUUID string, offset, limit int) ([]model.LogEntry, error) {
	query := `
		SELECT id, event, user_uuid, event_description, created_at
		FROM logs
		WHERE user_uuid = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3
	`
	entries := []model.LogEntry{}
	if err := r.DB.SelectContext(ctx, &entries, query, userUUID, offset, limit); err != nil {
		return nil, util.LogError("[LogRepo] не удалось получить журнал пользователя", err)
	}
	return entries, nil
}
