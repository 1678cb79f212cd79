package model

import "time"

// События журнала конвейера сжатия
const (
	EventTaskExecution      = "Scheduled Task Execution"
	EventCompressionSuccess = "Document Compression Success"
	EventTaskError          = "Scheduled Task Error"
)

// LogEntry : запись журнала, только добавляется
type LogEntry struct {
	ID               int64     `db:"id" json:"id"`
	Event            string    `db:"event" json:"event"`
	UserUUID         string    `db:"user_uuid" json:"user_uuid"`
	EventDescription string    `db:"event_description" json:"event_description"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
