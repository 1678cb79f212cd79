package handler

import (
	"instashare-backend/internal/model/requestresponse"
	"instashare-backend/internal/ports"
	"instashare-backend/internal/util"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// GetUser godoc
// @Summary Профиль пользователя
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	userUUID := chi.URLParam(r, "uuid")
	if !restrictToOwner(w, claims, userUUID) {
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userUUID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.UserResponse{Data: user})
}

// AssignRole godoc
// @Summary Назначение роли пользователю
// @Description Требуется токен администратора.
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param body body requestresponse.AssignRoleRequest true "Роль"
// @Param Authorization header string true "Bearer токен администратора"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid}/roles [post]
func (h *UserHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.AssignRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if strings.TrimSpace(req.RoleName) == "" {
		util.HandleError(w, "role_name обязателен", http.StatusBadRequest)
		return
	}

	userUUID := chi.URLParam(r, "uuid")
	if err := h.UserService.AssignRole(r.Context(), userUUID, req.RoleName); err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "роль назначена"})
}

// ListUserRoles godoc
// @Summary Роли пользователя
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserRolesResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid}/roles [get]
func (h *UserHandler) ListUserRoles(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	userUUID := chi.URLParam(r, "uuid")
	if !restrictToOwner(w, claims, userUUID) {
		return
	}

	roles, err := h.UserService.ListUserRoles(r.Context(), userUUID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.UserRolesResponse{Data: roles, Count: len(roles)})
}
