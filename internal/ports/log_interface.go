package ports

import (
	"context"
	"instashare-backend/internal/model"
)

type LogRepository interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	GetByID(ctx context.Context, id int64) (*model.LogEntry, error)
	FindByUser(ctx context.Context, userUUID string, offset, limit int) ([]model.LogEntry, error)
}

// EventLog : журнал событий, ошибки записи не доходят до вызывающего
type EventLog interface {
	Append(ctx context.Context, event, userUUID, description string) *model.LogEntry
}

// LogService : чтение журнала для операторов
type LogService interface {
	GetLog(ctx context.Context, id int64) (*model.LogEntry, error)
	ListUserLogs(ctx context.Context, userUUID string, offset, limit int) ([]model.LogEntry, error)
}
