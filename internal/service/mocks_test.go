package service_test

import (
	"context"
	"instashare-backend/internal/model"
	"iter"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct{ mock.Mock }

func (m *MockDocumentRepository) FindByStatus(ctx context.Context, status model.DocumentStatus) iter.Seq2[model.Document, error] {
	return m.Called(ctx, status).Get(0).(iter.Seq2[model.Document, error])
}

func (m *MockDocumentRepository) Update(ctx context.Context, documentUUID string, fields model.DocumentUpdate) (*model.Document, error) {
	args := m.Called(ctx, documentUUID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) Get(ctx context.Context, documentUUID string) (*model.Document, error) {
	args := m.Called(ctx, documentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Document, error) {
	args := m.Called(ctx, exec, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) Create(ctx context.Context, exec sqlx.ExtContext, doc *model.Document) error {
	return m.Called(ctx, exec, doc).Error(0)
}

func (m *MockDocumentRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error) {
	args := m.Called(ctx, exec, documentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) SoftDelete(ctx context.Context, exec sqlx.ExtContext, documentUUID string, ownerUUID string) error {
	return m.Called(ctx, exec, documentUUID, ownerUUID).Error(0)
}

func (m *MockDocumentRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(sqlx.ExtContext), args.Get(1).(func() error), args.Get(2).(func() error), args.Error(3)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) SetDocument(ctx context.Context, document *model.Document) error {
	return m.Called(ctx, document).Error(0)
}

func (m *MockCacheRepository) GetDocument(ctx context.Context, uuid string) (*model.Document, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockCacheRepository) DeleteDocument(ctx context.Context, uuid string) error {
	return m.Called(ctx, uuid).Error(0)
}

type MockShareRepository struct{ mock.Mock }

func (m *MockShareRepository) AddShare(ctx context.Context, exec sqlx.ExtContext, documentUUID, userUUID string) error {
	return m.Called(ctx, exec, documentUUID, userUUID).Error(0)
}

func (m *MockShareRepository) ListSharedUsers(ctx context.Context, exec sqlx.ExtContext, documentUUID string) ([]model.SharedUser, error) {
	args := m.Called(ctx, exec, documentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SharedUser), args.Error(1)
}

func (m *MockShareRepository) HasAccess(ctx context.Context, exec sqlx.ExtContext, documentUUID, userUUID string) (bool, error) {
	args := m.Called(ctx, exec, documentUUID, userUUID)
	return args.Bool(0), args.Error(1)
}

type MockS3Storage struct{ mock.Mock }

func (m *MockS3Storage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockS3Storage) Upload(ctx context.Context, bucket, key string, data []byte, contentType string, overwrite bool) error {
	return m.Called(ctx, bucket, key, data, contentType, overwrite).Error(0)
}

func (m *MockS3Storage) Delete(ctx context.Context, bucket, key string) error {
	return m.Called(ctx, bucket, key).Error(0)
}

func (m *MockS3Storage) PublicURL(bucket, key string) string {
	return m.Called(bucket, key).String(0)
}

func (m *MockS3Storage) DefaultBucket() string {
	return m.Called().String(0)
}

func (m *MockS3Storage) GeneratePresignedGetURL(ctx context.Context, bucket, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, expire)
	return args.String(0), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	args := m.Called(ctx, exec, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error) {
	args := m.Called(ctx, exec, uuid)
	return args.Bool(0), args.Error(1)
}

type MockRoleRepository struct{ mock.Mock }

func (m *MockRoleRepository) FindByName(ctx context.Context, exec sqlx.ExtContext, roleName string) (*model.Role, error) {
	args := m.Called(ctx, exec, roleName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) AssignRole(ctx context.Context, exec sqlx.ExtContext, roleID int64, userUUID string) error {
	return m.Called(ctx, exec, roleID, userUUID).Error(0)
}

func (m *MockRoleRepository) ListUserRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.UserRole, error) {
	args := m.Called(ctx, exec, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserRole), args.Error(1)
}

func (m *MockRoleRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(sqlx.ExtContext), args.Get(1).(func() error), args.Get(2).(func() error), args.Error(3)
}

type MockLogRepository struct{ mock.Mock }

func (m *MockLogRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLogRepository) GetByID(ctx context.Context, id int64) (*model.LogEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LogEntry), args.Error(1)
}

func (m *MockLogRepository) FindByUser(ctx context.Context, userUUID string, offset, limit int) ([]model.LogEntry, error) {
	args := m.Called(ctx, userUUID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}
