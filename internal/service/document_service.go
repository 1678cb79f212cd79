package service

import (
	"context"
	"fmt"
	"instashare-backend/internal/model"
	"instashare-backend/internal/ports"
	"instashare-backend/internal/util"
	"log"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type DocumentService struct {
	documentRepository ports.DocumentRepository
	cacheRepository    ports.CacheRepository
	shareRepository    ports.ShareRepository
	storageInterface   ports.S3Storage
	userRepository     ports.UserRepository
	ttl                time.Duration
}

func NewDocumentService(
	documentRepository ports.DocumentRepository,
	cacheRepository ports.CacheRepository,
	shareRepository ports.ShareRepository,
	storageInterface ports.S3Storage,
	userRepository ports.UserRepository,
	ttl time.Duration,
) *DocumentService {
	return &DocumentService{
		documentRepository: documentRepository,
		cacheRepository:    cacheRepository,
		shareRepository:    shareRepository,
		storageInterface:   storageInterface,
		userRepository:     userRepository,
		ttl:                ttl,
	}
}

// CreateDocument : регистрирует документ без файла, статус uploaded
func (s *DocumentService) CreateDocument(ctx context.Context, document *model.Document) (*model.Document, error) {
	if document.UUID == "" {
		document.UUID = uuid.NewString()
	}
	document.Status = model.StatusUploaded
	document.FileURL = nil

	exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[DocumentService] не удалось начать транзакцию", err)
	}
	defer rollback()

	exists, err := s.userRepository.Exists(ctx, exec, document.OwnerUUID)
	if err != nil {
		return nil, util.LogError("[DocumentService] ошибка проверки владельца", err)
	}
	if !exists {
		return nil, fmt.Errorf("[DocumentService] владелец %s: %w", document.OwnerUUID, model.ErrNotFound)
	}

	if err := s.documentRepository.Create(ctx, exec, document); err != nil {
		return nil, util.LogError("[DocumentService] не удалось сохранить документ в БД", err)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[DocumentService] не удалось закоммитить транзакцию", err)
	}

	log.Printf("[DocumentService] документ %s (%s) успешно создан", document.Name, document.UUID)
	return document, nil
}

// UploadDocumentFile : кладёт файл в хранилище и записывает публичную ссылку в документ
func (s *DocumentService) UploadDocumentFile(ctx context.Context, documentUUID, userUUID, filename, contentType string, data []byte) (*model.Document, error) {
	document, err := s.loadOwned(ctx, documentUUID, userUUID)
	if err != nil {
		return nil, err
	}

	filename = path.Base(filename)
	if filename == "." || filename == "/" || filename == "" {
		filename = document.Name
	}
	if contentType == "" {
		contentType = util.ContentTypeFor(filename)
	}

	bucket := s.storageInterface.DefaultBucket()
	key := fmt.Sprintf("documents/%s/%s", document.UUID, filename)
	if err := s.storageInterface.Upload(ctx, bucket, key, data, contentType, true); err != nil {
		return nil, util.LogError("[DocumentService] не удалось загрузить файл в хранилище", err)
	}

	fileURL := s.storageInterface.PublicURL(bucket, key)
	status := model.StatusUploaded
	size := strconv.Itoa(len(data))
	uploadedAt := time.Now()

	updated, err := s.documentRepository.Update(ctx, document.UUID, model.DocumentUpdate{
		Size:       &size,
		Status:     &status,
		FileURL:    &fileURL,
		UploadedAt: &uploadedAt,
	})
	if err != nil {
		return nil, util.LogError("[DocumentService] не удалось сохранить ссылку на файл", err)
	}

	s.invalidate(ctx, document.UUID)

	log.Printf("[DocumentService] файл документа %s загружен в %s/%s", document.UUID, bucket, key)
	return updated, nil
}

// UpdateDocumentInfo : владелец меняет имя, тип или размер документа
func (s *DocumentService) UpdateDocumentInfo(ctx context.Context, documentUUID, userUUID string, fields model.DocumentUpdate) (*model.Document, error) {
	update := model.DocumentUpdate{Name: fields.Name, Type: fields.Type, Size: fields.Size}
	if update.Empty() {
		return nil, fmt.Errorf("[DocumentService] нет полей для обновления")
	}

	document, err := s.loadOwned(ctx, documentUUID, userUUID)
	if err != nil {
		return nil, err
	}

	updated, err := s.documentRepository.Update(ctx, document.UUID, update)
	if err != nil {
		return nil, util.LogError("[DocumentService] не удалось обновить документ", err)
	}

	s.invalidate(ctx, document.UUID)

	log.Printf("[DocumentService] мета-данные документа %s обновлены", document.UUID)
	return updated, nil
}

// ListUserDocuments : документы, загруженные пользователем
func (s *DocumentService) ListUserDocuments(ctx context.Context, ownerUUID string) ([]model.Document, error) {
	exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[DocumentService] не удалось начать транзакцию", err)
	}
	defer rollback()

	exists, err := s.userRepository.Exists(ctx, exec, ownerUUID)
	if err != nil {
		return nil, util.LogError("[DocumentService] ошибка проверки пользователя", err)
	}
	if !exists {
		return nil, fmt.Errorf("[DocumentService] пользователь %s: %w", ownerUUID, model.ErrNotFound)
	}

	documents, err := s.documentRepository.FindByOwner(ctx, exec, ownerUUID)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[DocumentService] не удалось закоммитить транзакцию", err)
	}

	return documents, nil
}

// GetDocument : возвращает документ владельцу или пользователю, которому он открыт
func (s *DocumentService) GetDocument(ctx context.Context, documentUUID, userUUID string) (*model.GetDocumentResult, error) {
	document, err := s.cacheRepository.GetDocument(ctx, documentUUID)
	if err != nil {
		log.Printf("[DocumentService] ошибка кэширования: %v", err)
	}

	exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[DocumentService] не удалось начать транзакцию", err)
	}
	defer rollback()

	fromCache := document != nil
	if !fromCache {
		document, err = s.documentRepository.GetByUUID(ctx, exec, documentUUID)
		if err != nil {
			return nil, err
		}
	}

	if document.OwnerUUID != userUUID {
		hasAccess, err := s.shareRepository.HasAccess(ctx, exec, documentUUID, userUUID)
		if err != nil {
			return nil, util.LogError("[DocumentService] ошибка проверки доступа", err)
		}
		if !hasAccess {
			return nil, fmt.Errorf("[DocumentService] документ %s: %w", documentUUID, model.ErrAccessDenied)
		}
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[DocumentService] не удалось закоммитить транзакцию", err)
	}

	if fromCache {
		log.Printf("[DocumentService] документ %s взят из кэша Redis", document.UUID)
	} else {
		if err := s.cacheRepository.SetDocument(ctx, document); err != nil {
			log.Printf("[DocumentService] ошибка кэширования документа: %v", err)
		}
		log.Printf("[DocumentService] документ %s взят из БД и успешно кэширован Redis", document.UUID)
	}

	var getURL string
	if document.HasStorageReference() {
		ref, err := model.ParseStorageReference(*document.FileURL)
		if err != nil {
			log.Printf("[DocumentService] у документа %s неверная ссылка на файл: %v", document.UUID, err)
		} else {
			getURL, err = s.storageInterface.GeneratePresignedGetURL(ctx, ref.Bucket, ref.Path, s.ttl)
			if err != nil {
				return nil, util.LogError("[DocumentService] не удалось сгенерировать pre-signed GET URL", err)
			}
		}
	}

	return &model.GetDocumentResult{
		Document: document,
		GetURL:   getURL,
	}, nil
}

// DeleteDocument : мягкое удаление, только владелец
func (s *DocumentService) DeleteDocument(ctx context.Context, documentUUID, userUUID string) error {
	exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[DocumentService] не удалось начать транзакцию", err)
	}
	defer rollback()

	document, err := s.documentRepository.GetByUUID(ctx, exec, documentUUID)
	if err != nil {
		return err
	}
	if document.OwnerUUID != userUUID {
		return fmt.Errorf("[DocumentService] удалить документ может только владелец: %w", model.ErrAccessDenied)
	}

	if err := s.documentRepository.SoftDelete(ctx, exec, documentUUID, userUUID); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[DocumentService] не удалось закоммитить транзакцию", err)
	}

	s.invalidate(ctx, documentUUID)

	log.Printf("[DocumentService] документ %s удалён", documentUUID)
	return nil
}

// ShareDocument : владелец открывает документ другому пользователю
func (s *DocumentService) ShareDocument(ctx context.Context, documentUUID, ownerUUID, targetUserUUID string) error {
	exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[DocumentService] не удалось начать транзакцию", err)
	}
	defer rollback()

	document, err := s.documentRepository.GetByUUID(ctx, exec, documentUUID)
	if err != nil {
		return err
	}
	if document.OwnerUUID != ownerUUID {
		return fmt.Errorf("[DocumentService] открыть доступ может только владелец: %w", model.ErrAccessDenied)
	}
	if targetUserUUID == ownerUUID {
		return nil
	}

	exists, err := s.userRepository.Exists(ctx, exec, targetUserUUID)
	if err != nil {
		return util.LogError("[DocumentService] ошибка проверки пользователя", err)
	}
	if !exists {
		return fmt.Errorf("[DocumentService] пользователь %s: %w", targetUserUUID, model.ErrNotFound)
	}

	if err := s.shareRepository.AddShare(ctx, exec, documentUUID, targetUserUUID); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[DocumentService] не удалось закоммитить транзакцию", err)
	}

	log.Printf("[DocumentService] документ %s открыт пользователю %s", documentUUID, targetUserUUID)
	return nil
}

// ListSharedUsers : кому открыт документ, видно владельцу и тем, кому он открыт
func (s *DocumentService) ListSharedUsers(ctx context.Context, documentUUID, userUUID string) ([]model.SharedUser, error) {
	exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[DocumentService] не удалось начать транзакцию", err)
	}
	defer rollback()

	hasAccess, err := s.shareRepository.HasAccess(ctx, exec, documentUUID, userUUID)
	if err != nil {
		return nil, util.LogError("[DocumentService] ошибка проверки доступа", err)
	}
	if !hasAccess {
		return nil, fmt.Errorf("[DocumentService] документ %s: %w", documentUUID, model.ErrAccessDenied)
	}

	users, err := s.shareRepository.ListSharedUsers(ctx, exec, documentUUID)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[DocumentService] не удалось закоммитить транзакцию", err)
	}

	return users, nil
}

func (s *DocumentService) loadOwned(ctx context.Context, documentUUID, userUUID string) (*model.Document, error) {
	exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[DocumentService] не удалось начать транзакцию", err)
	}
	defer rollback()

	document, err := s.documentRepository.GetByUUID(ctx, exec, documentUUID)
	if err != nil {
		return nil, err
	}
	if document.OwnerUUID != userUUID {
		return nil, fmt.Errorf("[DocumentService] изменить документ может только владелец: %w", model.ErrAccessDenied)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[DocumentService] не удалось закоммитить транзакцию", err)
	}
	return document, nil
}

func (s *DocumentService) invalidate(ctx context.Context, documentUUID string) {
	if err := s.cacheRepository.DeleteDocument(ctx, documentUUID); err != nil {
		log.Printf("[DocumentService] ошибка инвалидации кэша: %v", err)
	}
}
