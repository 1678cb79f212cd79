package ports

import (
	"context"
	"instashare-backend/internal/model"
	"iter"
	"time"

	"github.com/jmoiron/sqlx"
)

// CompressionDocuments : то, что нужно конвейеру сжатия от хранилища документов
type CompressionDocuments interface {
	FindByStatus(ctx context.Context, status model.DocumentStatus) iter.Seq2[model.Document, error]
	Update(ctx context.Context, documentUUID string, fields model.DocumentUpdate) (*model.Document, error)
	Get(ctx context.Context, documentUUID string) (*model.Document, error)
}

// DocumentRepository : SQL слой
type DocumentRepository interface {
	CompressionDocuments
	Create(ctx context.Context, exec sqlx.ExtContext, document *model.Document) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error)
	SoftDelete(ctx context.Context, exec sqlx.ExtContext, documentUUID string, ownerUUID string) error
	FindByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Document, error)
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

// DocumentLease : эксклюзивная захваченная на время обработка документа
type DocumentLease interface {
	Acquire(ctx context.Context, documentUUID, holder string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, documentUUID, holder string) error
}

type ShareRepository interface {
	AddShare(ctx context.Context, exec sqlx.ExtContext, documentUUID, userUUID string) error
	ListSharedUsers(ctx context.Context, exec sqlx.ExtContext, documentUUID string) ([]model.SharedUser, error)
	HasAccess(ctx context.Context, exec sqlx.ExtContext, documentUUID, userUUID string) (bool, error)
}

type DocumentService interface {
	CreateDocument(ctx context.Context, document *model.Document) (*model.Document, error)
	UploadDocumentFile(ctx context.Context, documentUUID, userUUID, filename, contentType string, data []byte) (*model.Document, error)
	UpdateDocumentInfo(ctx context.Context, documentUUID, userUUID string, fields model.DocumentUpdate) (*model.Document, error)
	ListUserDocuments(ctx context.Context, ownerUUID string) ([]model.Document, error)
	GetDocument(ctx context.Context, documentUUID, userUUID string) (*model.GetDocumentResult, error)
	DeleteDocument(ctx context.Context, documentUUID, userUUID string) error
	ShareDocument(ctx context.Context, documentUUID, ownerUUID, targetUserUUID string) error
	ListSharedUsers(ctx context.Context, documentUUID, userUUID string) ([]model.SharedUser, error)
}

// CompressionRunner : один проход конвейера сжатия, никогда не возвращает ошибку
type CompressionRunner interface {
	Run(ctx context.Context) model.CompressionReport
}
