package requestresponse

import "instashare-backend/internal/model"

// CompressionRunResponse : итог ручного запуска сжатия
type CompressionRunResponse struct {
	Data    model.CompressionReport `json:"data"`
	Message string                  `json:"message" example:"Scheduled compression task completed at: 2025-08-23T12:34:56Z"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
