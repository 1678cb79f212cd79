package service

import (
	"context"
	"fmt"
	"instashare-backend/internal/model"
	"instashare-backend/internal/ports"
	"log"
	"time"
)

// EventLogService : журнал событий поверх LogRepository.
// Ошибка записи только логируется, вызывающий её не видит.
type EventLogService struct {
	logRepository ports.LogRepository
	timeout       time.Duration
}

func NewEventLogService(logRepository ports.LogRepository, timeout time.Duration) *EventLogService {
	return &EventLogService{
		logRepository: logRepository,
		timeout:       timeout,
	}
}

// Append : возвращает сохранённую запись или nil, если записать не удалось
func (s *EventLogService) Append(ctx context.Context, event, userUUID, description string) *model.LogEntry {
	entry := &model.LogEntry{
		Event:            event,
		UserUUID:         userUUID,
		EventDescription: description,
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.logRepository.Create(writeCtx, entry); err != nil {
		log.Printf("[EventLog] %v", fmt.Errorf("%w: событие %q: %v", model.ErrLogWrite, event, err))
		return nil
	}

	return entry
}

const (
	defaultLogPageSize = 100
	maxLogPageSize     = 500
)

// GetLog : одна запись журнала по id
func (s *EventLogService) GetLog(ctx context.Context, id int64) (*model.LogEntry, error) {
	return s.logRepository.GetByID(ctx, id)
}

// ListUserLogs : записи пользователя, limit <= 0 даёт страницу по умолчанию
func (s *EventLogService) ListUserLogs(ctx context.Context, userUUID string, offset, limit int) ([]model.LogEntry, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLogPageSize
	}
	if limit > maxLogPageSize {
		limit = maxLogPageSize
	}
	return s.logRepository.FindByUser(ctx, userUUID, offset, limit)
}
