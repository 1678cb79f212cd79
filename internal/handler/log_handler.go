package handler

import (
	"instashare-backend/internal/model/requestresponse"
	"instashare-backend/internal/ports"
	"instashare-backend/internal/util"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type LogHandler struct {
	ports.LogService
}

func NewLogHandler(logService ports.LogService) *LogHandler {
	return &LogHandler{logService}
}

// GetLog godoc
// @Summary Запись журнала по ID
// @Description Требуется токен администратора.
// @Tags Logs
// @Produce json
// @Param id path int true "ID записи"
// @Param Authorization header string true "Bearer токен администратора"
// @Success 200 {object} requestresponse.LogResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/logs/{id} [get]
func (h *LogHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		util.HandleError(w, "неверный ID записи", http.StatusBadRequest)
		return
	}

	entry, err := h.LogService.GetLog(r.Context(), id)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.LogResponse{Data: entry})
}

// ListUserLogs godoc
// @Summary Журнал событий пользователя
// @Description Новые записи первыми. Пользователь видит только свой журнал, администратор любой.
// @Tags Logs
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param offset query int false "Смещение" default(0)
// @Param limit query int false "Размер страницы, не больше 500" default(100)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.LogsResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid}/logs [get]
func (h *LogHandler) ListUserLogs(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	userUUID := chi.URLParam(r, "uuid")
	if !restrictToOwner(w, claims, userUUID) {
		return
	}

	offset, ok := queryInt(w, r, "offset")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	entries, err := h.LogService.ListUserLogs(r.Context(), userUUID, offset, limit)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.LogsResponse{
		Data:   entries,
		Count:  len(entries),
		Offset: offset,
	})
}

// queryInt : необязательный неотрицательный параметр запроса, отсутствующий даёт 0
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		util.HandleError(w, "неверный параметр "+name, http.StatusBadRequest)
		return 0, false
	}
	return value, true
}
