package handler

import (
	"encoding/json"
	"errors"
	"instashare-backend/internal/model"
	"instashare-backend/internal/security"
	"instashare-backend/internal/util"
	"log"
	"net/http"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		util.HandleError(w, "неверное тело запроса", http.StatusBadRequest)
		return err
	}
	return nil
}

// currentClaims : пишет 401, если в контексте нет claims
func currentClaims(w http.ResponseWriter, r *http.Request) (*security.Claims, bool) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}

// restrictToOwner проверяет, имеет ли пользователь право доступа к ресурсу
func restrictToOwner(w http.ResponseWriter, claims *security.Claims, targetUUID string) bool {
	if claims.IsAdmin || claims.UserUUID == targetUUID {
		return true
	}
	util.HandleError(w, "доступ запрещён", http.StatusForbidden)
	return false
}

// sendServiceError : переводит ошибки сервисов в HTTP статус
func sendServiceError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case errors.Is(err, model.ErrNotFound):
		util.HandleError(w, "не найдено", http.StatusNotFound)
	case errors.Is(err, model.ErrAccessDenied):
		util.HandleError(w, "доступ запрещён", http.StatusForbidden)
	case errors.Is(err, model.ErrAlreadyExists):
		util.HandleError(w, "объект уже существует", http.StatusConflict)
	case errors.Is(err, model.ErrTransport):
		util.HandleError(w, "хранилище недоступно", http.StatusBadGateway)
	default:
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
