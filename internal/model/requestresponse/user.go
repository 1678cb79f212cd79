package requestresponse

import "instashare-backend/internal/model"

// ErrorResponse : стандартная структура ошибки, её пишет util.HandleError
type ErrorResponse struct {
	Error   string `json:"error" example:"Bad Request"`
	Message string `json:"message" example:"неверный формат запроса"`
	Code    int    `json:"code" example:"400"`
}

// UserResponse : успешный ответ с данными пользователя
type UserResponse struct {
	Data *model.User `json:"data"`
}

// AssignRoleRequest : назначение роли по имени
type AssignRoleRequest struct {
	RoleName string `json:"role_name" example:"editor"`
}

type UserRolesResponse struct {
	Data  []model.UserRole `json:"data"`
	Count int              `json:"count" example:"1"`
}
