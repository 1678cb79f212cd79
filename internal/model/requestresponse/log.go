package requestresponse

import "instashare-backend/internal/model"

type LogResponse struct {
	Data *model.LogEntry `json:"data"`
}

// LogsResponse : страница журнала пользователя
type LogsResponse struct {
	Data   []model.LogEntry `json:"data"`
	Count  int              `json:"count" example:"2"`
	Offset int              `json:"offset" example:"0"`
}
