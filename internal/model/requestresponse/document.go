package requestresponse

import (
	"instashare-backend/internal/model"
	"time"
)

// CreateDocumentRequest : мета-данные документа до загрузки файла
type CreateDocumentRequest struct {
	Name string  `json:"name" example:"report.pdf"`
	Type string  `json:"type" example:"application/pdf"`
	Size *string `json:"size,omitempty" example:"2.4 MB"`
}

// DocumentResponse : описывает документ для JSON-ответа
type DocumentResponse struct {
	UUID       string  `json:"id" example:"4b0c9d0e-6d7e-4c55-9a43-1f0f0c4a7b21"`
	OwnerUUID  string  `json:"owner_id" example:"0f8c2a55-3a7c-4e2b-8c44-2d8d6f1d4e10"`
	Name       string  `json:"name" example:"report.pdf"`
	Type       string  `json:"type" example:"application/pdf"`
	Size       *string `json:"size,omitempty" example:"2.4 MB"`
	Status     string  `json:"status" example:"uploaded"`
	FileURL    *string `json:"file_url,omitempty"`
	CreatedAt  string  `json:"created" example:"2025-08-23T12:34:56Z"`
	UpdatedAt  string  `json:"updated" example:"2025-08-23T12:34:56Z"`
	UploadedAt string  `json:"uploaded,omitempty" example:"2025-08-23T12:34:56Z"`
	GetURL     string  `json:"get_url,omitempty"`
}

// DocumentResponseFromModel : конвертирует model.Document в DocumentResponse
func DocumentResponseFromModel(doc *model.Document, getURL string) DocumentResponse {
	response := DocumentResponse{
		UUID:      doc.UUID,
		OwnerUUID: doc.OwnerUUID,
		Name:      doc.Name,
		Type:      doc.Type,
		Size:      doc.Size,
		Status:    string(doc.Status),
		FileURL:   doc.FileURL,
		CreatedAt: doc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: doc.UpdatedAt.Format(time.RFC3339),
		GetURL:    getURL,
	}
	if doc.UploadedAt != nil {
		response.UploadedAt = doc.UploadedAt.Format(time.RFC3339)
	}
	return response
}

// GetDocumentResponse : описывает ответ для одного документа
type GetDocumentResponse struct {
	Data      DocumentResponse `json:"data"`
	ExpiresIn string           `json:"expires_in,omitempty"`
}

// ShareDocumentRequest : представляет тело запроса для предоставления доступа
type ShareDocumentRequest struct {
	TargetUserUUID string `json:"target_user_uuid" example:"0f8c2a55-3a7c-4e2b-8c44-2d8d6f1d4e10"`
}

type SharedUsersResponse struct {
	Data  []model.SharedUser `json:"data"`
	Count int                `json:"count" example:"2"`
}

// SuccessResponse : стандартный ответ успешного выполнения операции
type SuccessResponse struct {
	Message string `json:"message" example:"Операция выполнена успешно"`
}

// UpdateDocumentRequest : частичное обновление мета-данных, отсутствующие поля не меняются
type UpdateDocumentRequest struct {
	Name *string `json:"name,omitempty" example:"report-final.pdf"`
	Type *string `json:"type,omitempty" example:"application/pdf"`
	Size *string `json:"size,omitempty" example:"2.5 MB"`
}

type UserDocumentsResponse struct {
	Data  []DocumentResponse `json:"data"`
	Count int                `json:"count" example:"3"`
}
