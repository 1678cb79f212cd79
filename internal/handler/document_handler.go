package handler

import (
	"context"
	"instashare-backend/config"
	"instashare-backend/internal/model"
	"instashare-backend/internal/model/requestresponse"
	"instashare-backend/internal/ports"
	"instashare-backend/internal/util"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxUploadSize : предел тела запроса загрузки файла
const maxUploadSize = 64 << 20

type DocumentHandler struct {
	ports.DocumentService
	cfg *config.TTL
}

func NewDocumentHandler(documentService ports.DocumentService, cfg *config.TTL) *DocumentHandler {
	return &DocumentHandler{documentService, cfg}
}

// CreateDocument godoc
// @Summary Регистрация нового документа
// @Description Сохраняет мета-данные документа, файл загружается отдельным запросом.
// @Tags Documents
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateDocumentRequest true "Мета-данные документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.GetDocumentResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/docs [post]
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req requestresponse.CreateDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.HandleError(w, "имя документа обязательно", http.StatusBadRequest)
		return
	}
	if req.Type == "" {
		req.Type = util.ContentTypeFor(req.Name)
	}

	document, err := h.DocumentService.CreateDocument(ctx, &model.Document{
		UUID:      uuid.NewString(),
		OwnerUUID: claims.UserUUID,
		Name:      req.Name,
		Type:      req.Type,
		Size:      req.Size,
	})
	if err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.GetDocumentResponse{
		Data: requestresponse.DocumentResponseFromModel(document, ""),
	})
}

// UploadDocumentFile godoc
// @Summary Загрузка файла документа
// @Description Загружает файл в объектное хранилище и сохраняет публичную ссылку. Документ снова попадает в очередь сжатия.
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param file formData file true "Файл документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.GetDocumentResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/docs/{doc_id}/file [put]
func (h *DocumentHandler) UploadDocumentFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	docUUID := chi.URLParam(r, "doc_id")
	if docUUID == "" {
		util.HandleError(w, "ID документа обязателен", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		util.HandleError(w, "файл не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		util.HandleError(w, "ошибка чтения файла", http.StatusInternalServerError)
		return
	}

	document, err := h.DocumentService.UploadDocumentFile(
		r.Context(),
		docUUID,
		claims.UserUUID,
		header.Filename,
		header.Header.Get("Content-Type"),
		fileBytes,
	)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.GetDocumentResponse{
		Data: requestresponse.DocumentResponseFromModel(document, ""),
	})
}

// GetDocument godoc
// @Summary Получение документа по ID
// @Description Возвращает мета-данные документа и pre-signed ссылку на файл.
// @Tags Documents
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.GetDocumentResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/docs/{doc_id} [get]
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	docUUID := chi.URLParam(r, "doc_id")
	if docUUID == "" {
		util.HandleError(w, "ID документа обязателен", http.StatusBadRequest)
		return
	}

	result, err := h.DocumentService.GetDocument(r.Context(), docUUID, claims.UserUUID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", result.Document.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.GetDocumentResponse{
		Data:      requestresponse.DocumentResponseFromModel(result.Document, result.GetURL),
		ExpiresIn: strconv.Itoa(h.cfg.S3AndRedis),
	})
}

// UpdateDocumentInfo godoc
// @Summary Изменение мета-данных документа
// @Description Меняет имя, тип или размер документа. Доступно только владельцу.
// @Tags Documents
// @Accept json
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param body body requestresponse.UpdateDocumentRequest true "Изменяемые поля"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.GetDocumentResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/docs/{doc_id} [patch]
func (h *DocumentHandler) UpdateDocumentInfo(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req requestresponse.UpdateDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			util.HandleError(w, "имя документа не может быть пустым", http.StatusBadRequest)
			return
		}
		req.Name = &name
	}

	fields := model.DocumentUpdate{Name: req.Name, Type: req.Type, Size: req.Size}
	if fields.Empty() {
		util.HandleError(w, "нет полей для обновления", http.StatusBadRequest)
		return
	}

	docUUID := chi.URLParam(r, "doc_id")
	document, err := h.DocumentService.UpdateDocumentInfo(r.Context(), docUUID, claims.UserUUID, fields)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.GetDocumentResponse{
		Data: requestresponse.DocumentResponseFromModel(document, ""),
	})
}

// ListUserDocuments godoc
// @Summary Документы, загруженные пользователем
// @Tags Documents
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserDocumentsResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid}/documents [get]
func (h *DocumentHandler) ListUserDocuments(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	userUUID := chi.URLParam(r, "uuid")
	if !restrictToOwner(w, claims, userUUID) {
		return
	}

	documents, err := h.DocumentService.ListUserDocuments(r.Context(), userUUID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	data := make([]requestresponse.DocumentResponse, 0, len(documents))
	for i := range documents {
		data = append(data, requestresponse.DocumentResponseFromModel(&documents[i], ""))
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.UserDocumentsResponse{Data: data, Count: len(data)})
}

// DeleteDocument godoc
// @Summary Удаление документа
// @Description Мягкое удаление, доступно только владельцу.
// @Tags Documents
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/docs/{doc_id} [delete]
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	docUUID := chi.URLParam(r, "doc_id")
	if err := h.DocumentService.DeleteDocument(r.Context(), docUUID, claims.UserUUID); err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "документ удалён"})
}

// ShareDocument godoc
// @Summary Открыть документ пользователю
// @Tags Documents
// @Accept json
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param body body requestresponse.ShareDocumentRequest true "Пользователь"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/docs/{doc_id}/share [post]
func (h *DocumentHandler) ShareDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req requestresponse.ShareDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if _, err := uuid.Parse(req.TargetUserUUID); err != nil {
		util.HandleError(w, "неверный target_user_uuid", http.StatusBadRequest)
		return
	}

	docUUID := chi.URLParam(r, "doc_id")
	if err := h.DocumentService.ShareDocument(r.Context(), docUUID, claims.UserUUID, req.TargetUserUUID); err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "доступ предоставлен"})
}

// ListSharedUsers godoc
// @Summary Пользователи, которым открыт документ
// @Tags Documents
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SharedUsersResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/docs/{doc_id}/shares [get]
func (h *DocumentHandler) ListSharedUsers(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	docUUID := chi.URLParam(r, "doc_id")
	users, err := h.DocumentService.ListSharedUsers(r.Context(), docUUID, claims.UserUUID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.SharedUsersResponse{Data: users, Count: len(users)})
}
