package handler

import (
	"context"
	"instashare-backend/internal/model/requestresponse"
	"instashare-backend/internal/ports"
	"instashare-backend/internal/util"
	"log"
	"net/http"
	"time"
)

type CompressionHandler struct {
	runner ports.CompressionRunner
}

func NewCompressionHandler(runner ports.CompressionRunner) *CompressionHandler {
	return &CompressionHandler{runner: runner}
}

// RunCompression godoc
// @Summary Ручной запуск сжатия документов
// @Description Синхронно выполняет один проход конвейера сжатия. Требуется токен администратора.
// @Tags Compression
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Success 200 {object} requestresponse.CompressionRunResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/compression/run [post]
func (h *CompressionHandler) RunCompression(w http.ResponseWriter, r *http.Request) {
	report := h.runner.Run(context.WithoutCancel(r.Context()))

	util.WriteJSON(w, http.StatusOK, requestresponse.CompressionRunResponse{
		Data:    report,
		Message: report.String(),
	})
}

// HealthCheck : имя зависимости -> проверка
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health godoc
// @Summary Проверка доступности БД и Redis
// @Tags Health
// @Produce json
// @Success 200 {object} requestresponse.HealthResponse
// @Failure 503 {object} requestresponse.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			log.Printf("[Health] %s недоступен: %v", name, err)
			util.WriteJSON(w, http.StatusServiceUnavailable, requestresponse.HealthResponse{Status: name + " unavailable"})
			return
		}
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.HealthResponse{Status: "ok"})
}
