package model

import (
	"fmt"
	"time"
)

// CompressionReport : итог одного прохода конвейера сжатия
type CompressionReport struct {
	RunUUID     string    `json:"run_uuid"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	Scanned     int       `json:"scanned"`
	Compressed  int       `json:"compressed"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
}

func (r CompressionReport) String() string {
	return fmt.Sprintf("Scheduled compression task completed at: %s", r.CompletedAt.Format(time.RFC3339))
}
