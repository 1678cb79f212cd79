package repository

import (
	"context"
	"database/sql"
	"errors"
	"instashare-backend/internal/model"
	"iter"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var documentColumnNames = []string{
	"uuid", "owner_uuid", "name", "type", "size", "status", "file_url", "processing_since",
	"processing_holder", "created_at", "updated_at", "deleted_at", "uploaded_at",
}

func documentRow(rows *sqlmock.Rows, uuid, owner, status string, fileURL interface{}) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(uuid, owner, uuid+".pdf", "application/pdf", nil, status, fileURL, nil, nil, now, now, nil, nil)
}

func TestDocumentRepository_FindByStatus(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewDocumentRepository(database)

	for i := 0; i < 2; i++ {
		rows := sqlmock.NewRows(documentColumnNames)
		documentRow(rows, "doc-1", "owner-1", "uploaded", "http://x/public/b/doc-1.pdf")
		documentRow(rows, "doc-2", "owner-2", "uploaded", nil)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 AND deleted_at IS NULL")).
			WithArgs("uploaded", int64(scanPageSize)).
			WillReturnRows(rows)
	}

	seq := repo.FindByStatus(context.Background(), model.StatusUploaded)

	for pass := 0; pass < 2; pass++ {
		var got []model.Document
		for doc, err := range seq {
			require.NoError(t, err)
			got = append(got, doc)
		}
		require.Len(t, got, 2)
		assert.Equal(t, "doc-1", got[0].UUID)
		assert.True(t, got[0].HasStorageReference())
		assert.False(t, got[1].HasStorageReference())
		assert.Equal(t, model.StatusUploaded, got[1].Status)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_FindByStatus_StopsEarly(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewDocumentRepository(database)

	rows := sqlmock.NewRows(documentColumnNames)
	documentRow(rows, "doc-1", "owner-1", "uploaded", nil)
	documentRow(rows, "doc-2", "owner-2", "uploaded", nil)
	mock.ExpectQuery("FROM documents").WithArgs("uploaded", int64(scanPageSize)).WillReturnRows(rows).RowsWillBeClosed()

	count := 0
	for _, err := range repo.FindByStatus(context.Background(), model.StatusUploaded) {
		require.NoError(t, err)
		count++
		break
	}

	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_FindByStatus_Errors(t *testing.T) {
	t.Run("query error", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := NewDocumentRepository(database)
		mock.ExpectQuery("FROM documents").WillReturnError(errors.New("connection refused"))

		var errs []error
		for _, err := range repo.FindByStatus(context.Background(), model.StatusUploaded) {
			errs = append(errs, err)
		}

		require.Len(t, errs, 1)
		assert.ErrorContains(t, errs[0], "connection refused")
	})

	t.Run("row error fails the page", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := NewDocumentRepository(database)
		rows := sqlmock.NewRows(documentColumnNames)
		documentRow(rows, "doc-1", "owner-1", "uploaded", nil)
		documentRow(rows, "doc-2", "owner-2", "uploaded", nil)
		rows.RowError(1, errors.New("conn reset"))
		mock.ExpectQuery("FROM documents").WillReturnRows(rows)

		var docs []string
		var errs []error
		for doc, err := range repo.FindByStatus(context.Background(), model.StatusUploaded) {
			if err != nil {
				errs = append(errs, err)
				continue
			}
			docs = append(docs, doc.UUID)
		}

		assert.Empty(t, docs)
		require.Len(t, errs, 1)
		assert.ErrorContains(t, errs[0], "conn reset")
	})
}

func TestDocumentRepository_FindByStatus_Pages(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewDocumentRepository(database)
	repo.pageSize = 2

	t1 := time.Date(2025, 8, 23, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t2.Add(time.Minute)
	row := func(rows *sqlmock.Rows, uuid string, created time.Time) *sqlmock.Rows {
		return rows.AddRow(uuid, "owner-1", uuid+".pdf", "application/pdf", nil, "uploaded", nil, nil, nil, created, created, nil, nil)
	}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 AND deleted_at IS NULL")).
		WithArgs("uploaded", int64(2)).
		WillReturnRows(row(row(sqlmock.NewRows(documentColumnNames), "doc-1", t1), "doc-2", t2))
	mock.ExpectQuery(regexp.QuoteMeta("AND (created_at, uuid) > ($2, $3)")).
		WithArgs("uploaded", t2, "doc-2", int64(2)).
		WillReturnRows(row(sqlmock.NewRows(documentColumnNames), "doc-3", t3))

	var got []string
	for doc, err := range repo.FindByStatus(context.Background(), model.StatusUploaded) {
		require.NoError(t, err)
		got = append(got, doc.UUID)
	}

	assert.Equal(t, []string{"doc-1", "doc-2", "doc-3"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_FindByStatus_DoesNotHoldConnection(t *testing.T) {
	database, mock := newMockDatabase(t)
	database.SetMaxOpenConns(1)
	repo := NewDocumentRepository(database)
	repo.pageSize = 1

	for i := 0; i < 2; i++ {
		rows := sqlmock.NewRows(documentColumnNames)
		documentRow(rows, "doc-1", "owner-1", "uploaded", nil)
		mock.ExpectQuery("FROM documents").WithArgs("uploaded", int64(1)).WillReturnRows(rows)
	}
	mock.ExpectExec("UPDATE documents").
		WithArgs("doc-1", "run-1", float64(60)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// два прохода остановлены на середине, каждый держит свою позицию
	nextA, stopA := iter.Pull2(repo.FindByStatus(ctx, model.StatusUploaded))
	defer stopA()
	docA, err, ok := nextA()
	require.True(t, ok)
	require.NoError(t, err)

	nextB, stopB := iter.Pull2(repo.FindByStatus(ctx, model.StatusUploaded))
	defer stopB()
	docB, err, ok := nextB()
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, docA.UUID, docB.UUID)

	acquired, err := NewPostgresLease(database).Acquire(ctx, "doc-1", "run-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_Update(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewDocumentRepository(database)

	status := model.StatusProcess
	fileURL := "http://x/public/documents/doc-1/a.zip"
	updatedAt := time.Now()

	rows := sqlmock.NewRows(documentColumnNames)
	documentRow(rows, "doc-1", "owner-1", "process", fileURL)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE documents SET status = $1, file_url = $2, updated_at = $3 WHERE uuid = $4 AND deleted_at IS NULL")).
		WithArgs("process", fileURL, updatedAt, "doc-1").
		WillReturnRows(rows)

	doc, err := repo.Update(context.Background(), "doc-1", model.DocumentUpdate{
		Status:    &status,
		FileURL:   &fileURL,
		UpdatedAt: &updatedAt,
	})

	require.NoError(t, err)
	assert.Equal(t, model.StatusProcess, doc.Status)
	assert.Equal(t, fileURL, *doc.FileURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_Update_RefreshesUpdatedAtByDefault(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewDocumentRepository(database)
	name := "renamed.pdf"

	rows := sqlmock.NewRows(documentColumnNames)
	documentRow(rows, "doc-1", "owner-1", "uploaded", nil)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE documents SET name = $1, updated_at = NOW() WHERE uuid = $2")).
		WithArgs(name, "doc-1").
		WillReturnRows(rows)

	_, err := repo.Update(context.Background(), "doc-1", model.DocumentUpdate{Name: &name})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_Update_Errors(t *testing.T) {
	status := model.StatusProcess

	t.Run("not found", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := NewDocumentRepository(database)
		mock.ExpectQuery("UPDATE documents").WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(context.Background(), "doc-404", model.DocumentUpdate{Status: &status})

		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("persistence", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := NewDocumentRepository(database)
		mock.ExpectQuery("UPDATE documents").WillReturnError(errors.New("deadlock detected"))

		_, err := repo.Update(context.Background(), "doc-1", model.DocumentUpdate{Status: &status})

		assert.ErrorIs(t, err, model.ErrPersistence)
	})
}

func TestDocumentRepository_Update_ComparesCurrentState(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewDocumentRepository(database)

	status := model.StatusProcess
	expected := model.StatusUploaded
	fileURL := "http://x/public/documents/doc-1/a.zip"
	original := "http://x/public/documents/documents/doc-1/a.pdf"
	updatedAt := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE uuid = $4 AND deleted_at IS NULL AND status = $5 AND file_url = $6")).
		WithArgs("process", fileURL, updatedAt, "doc-1", "uploaded", original).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "doc-1", model.DocumentUpdate{
		Status:    &status,
		FileURL:   &fileURL,
		UpdatedAt: &updatedAt,
		IfStatus:  &expected,
		IfFileURL: &original,
	})

	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_Get(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewDocumentRepository(database)

	rows := sqlmock.NewRows(documentColumnNames)
	documentRow(rows, "doc-1", "owner-1", "process", "http://x/public/documents/doc-1/a.zip")
	mock.ExpectQuery("FROM documents WHERE uuid").WithArgs("doc-1").WillReturnRows(rows)
	mock.ExpectQuery("FROM documents WHERE uuid").WithArgs("doc-2").WillReturnError(sql.ErrNoRows)

	doc, err := repo.Get(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcess, doc.Status)

	_, err = repo.Get(context.Background(), "doc-2")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_FindByOwner(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewDocumentRepository(database)

	rows := sqlmock.NewRows(documentColumnNames)
	documentRow(rows, "doc-2", "owner-1", "process", "http://x/public/documents/doc-2/b.zip")
	documentRow(rows, "doc-1", "owner-1", "uploaded", nil)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE owner_uuid = $1 AND deleted_at IS NULL")).
		WithArgs("owner-1").
		WillReturnRows(rows)
	mock.ExpectQuery("WHERE owner_uuid").
		WithArgs("owner-2").
		WillReturnRows(sqlmock.NewRows(documentColumnNames))

	docs, err := repo.FindByOwner(context.Background(), database, "owner-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-2", docs[0].UUID)

	empty, err := repo.FindByOwner(context.Background(), database, "owner-2")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_GetByUUID_NotFound(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewDocumentRepository(database)
	mock.ExpectQuery("FROM documents WHERE uuid").WithArgs("doc-404").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUUID(context.Background(), database, "doc-404")

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDocumentRepository_CreateAndSoftDelete(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewDocumentRepository(database)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs("doc-1", "owner-1", "a.pdf", "application/pdf", nil, "uploaded").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec("UPDATE documents").WithArgs("doc-1", "owner-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE documents").WithArgs("doc-1", "owner-1").WillReturnResult(sqlmock.NewResult(0, 0))

	doc := &model.Document{UUID: "doc-1", OwnerUUID: "owner-1", Name: "a.pdf", Type: "application/pdf", Status: model.StatusUploaded}
	require.NoError(t, repo.Create(context.Background(), database, doc))
	assert.Equal(t, now, doc.CreatedAt)

	require.NoError(t, repo.SoftDelete(context.Background(), database, "doc-1", "owner-1"))
	assert.ErrorIs(t, repo.SoftDelete(context.Background(), database, "doc-1", "owner-1"), model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
