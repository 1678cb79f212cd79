package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"instashare-backend/config"
	"instashare-backend/internal/model"
	"instashare-backend/internal/util"
	"iter"
	"strings"

	"github.com/jmoiron/sqlx"
)

const documentColumns = `uuid, owner_uuid, name, type, size, status, file_url, processing_since,
		processing_holder, created_at, updated_at, deleted_at, uploaded_at`

// scanPageSize : сколько документов FindByStatus читает за один запрос
const scanPageSize = 100

type DocumentRepository struct {
	*config.Database
	pageSize int
}

func NewDocumentRepository(database *config.Database) *DocumentRepository {
	return &DocumentRepository{Database: database, pageSize: scanPageSize}
}

// Create : сохраняем мета-данные нового документа, файл загружается отдельно
func (r *DocumentRepository) Create(ctx context.Context, exec sqlx.ExtContext, document *model.Document) error {
	query := `
		INSERT INTO documents (uuid, owner_uuid, name, type, size, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := exec.QueryRowxContext(
		ctx,
		query,
		document.UUID,
		document.OwnerUUID,
		document.Name,
		document.Type,
		document.Size,
		document.Status,
	).Scan(&document.CreatedAt, &document.UpdatedAt)
	if err != nil {
		return util.LogError("[DocumentRepo] не удалось сохранить документ", err)
	}

	return nil
}

// GetByUUID : возвращает не удалённый документ
func (r *DocumentRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE uuid = $1 AND deleted_at IS NULL`

	var document model.Document
	err := sqlx.GetContext(ctx, exec, &document, query, documentUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[DocumentRepo] документ %s: %w", documentUUID, model.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[DocumentRepo] не удалось получить документ", err)
	}

	return &document, nil
}

// SoftDelete : только владелец может удалить документ, строка остаётся в БД
func (r *DocumentRepository) SoftDelete(ctx context.Context, exec sqlx.ExtContext, documentUUID string, ownerUUID string) error {
	query := `
		UPDATE documents
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE uuid = $1 AND owner_uuid = $2 AND deleted_at IS NULL
	`
	result, err := exec.ExecContext(ctx, query, documentUUID, ownerUUID)
	if err != nil {
		return util.LogError("[DocumentRepo] не удалось удалить документ", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[DocumentRepo] не удалось проверить удаление документа", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[DocumentRepo] документ %s: %w", documentUUID, model.ErrNotFound)
	}

	return nil
}

// FindByStatus : ленивая выборка документов по статусу страницами по (created_at, uuid).
// Страница читается целиком и соединение возвращается в пул до обработки документов.
// Каждый вызов возвращённой последовательности выполняет выборку заново.
func (r *DocumentRepository) FindByStatus(ctx context.Context, status model.DocumentStatus) iter.Seq2[model.Document, error] {
	firstPage := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE status = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC, uuid ASC
		LIMIT $2
	`
	nextPage := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE status = $1 AND deleted_at IS NULL AND (created_at, uuid) > ($2, $3)
		ORDER BY created_at ASC, uuid ASC
		LIMIT $4
	`

	return func(yield func(model.Document, error) bool) {
		var last *model.Document
		for {
			var page []model.Document
			var err error
			if last == nil {
				err = sqlx.SelectContext(ctx, r.DB, &page, firstPage, status, r.pageSize)
			} else {
				err = sqlx.SelectContext(ctx, r.DB, &page, nextPage, status, last.CreatedAt, last.UUID, r.pageSize)
			}
			if err != nil {
				yield(model.Document{}, util.LogError("[DocumentRepo] не удалось выбрать документы по статусу", err))
				return
			}

			for _, document := range page {
				if !yield(document, nil) {
					return
				}
			}

			if len(page) == 0 || len(page) < r.pageSize {
				return
			}
			last = &page[len(page)-1]
		}
	}
}

// Get : текущее состояние документа вне транзакции
func (r *DocumentRepository) Get(ctx context.Context, documentUUID string) (*model.Document, error) {
	return r.GetByUUID(ctx, r.DB, documentUUID)
}

// FindByOwner : документы, загруженные пользователем
func (r *DocumentRepository) FindByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE owner_uuid = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, uuid ASC
	`
	documents := []model.Document{}
	if err := sqlx.SelectContext(ctx, exec, &documents, query, ownerUUID); err != nil {
		return nil, util.LogError("[DocumentRepo] не удалось получить документы пользователя", err)
	}
	return documents, nil
}

// Update : частичное обновление, updated_at обновляется всегда.
// Если условия IfStatus/IfFileURL не выполнены, возвращается model.ErrNotFound.
func (r *DocumentRepository) Update(ctx context.Context, documentUUID string, fields model.DocumentUpdate) (*model.Document, error) {
	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Name != nil {
		set("name", *fields.Name)
	}
	if fields.Type != nil {
		set("type", *fields.Type)
	}
	if fields.Size != nil {
		set("size", *fields.Size)
	}
	if fields.Status != nil {
		set("status", *fields.Status)
	}
	if fields.FileURL != nil {
		set("file_url", *fields.FileURL)
	}
	if fields.UploadedAt != nil {
		set("uploaded_at", *fields.UploadedAt)
	}
	if fields.UpdatedAt != nil {
		set("updated_at", *fields.UpdatedAt)
	} else {
		sets = append(sets, "updated_at = NOW()")
	}

	args = append(args, documentUUID)
	conditions := []string{fmt.Sprintf("uuid = $%d", len(args)), "deleted_at IS NULL"}
	if fields.IfStatus != nil {
		args = append(args, *fields.IfStatus)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if fields.IfFileURL != nil {
		args = append(args, *fields.IfFileURL)
		conditions = append(conditions, fmt.Sprintf("file_url = $%d", len(args)))
	}

	query := fmt.Sprintf(
		`UPDATE documents SET %s WHERE %s RETURNING %s`,
		strings.Join(sets, ", "), strings.Join(conditions, " AND "), documentColumns,
	)

	var document model.Document
	err := sqlx.GetContext(ctx, r.DB, &document, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[DocumentRepo] документ %s: %w", documentUUID, model.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[DocumentRepo] не удалось обновить документ", fmt.Errorf("%w: %v", model.ErrPersistence, err))
	}

	return &document, nil
}

func (r *DocumentRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, tx.Rollback, tx.Commit, nil
}
