package handler_test

import (
	"context"
	"instashare-backend/config"
	"instashare-backend/internal/handler"
	"instashare-backend/internal/model"
	"instashare-backend/internal/security"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

const (
	ownerUUID  = "0f8c2a55-3a7c-4e2b-8c44-2d8d6f1d4e10"
	friendUUID = "8a3e1d6b-9b1c-4f77-a2a4-5c6e2f9b0d31"
	docUUID    = "4b0c9d0e-6d7e-4c55-9a43-1f0f0c4a7b21"
)

type mockDocumentService struct{ mock.Mock }

func (m *mockDocumentService) CreateDocument(ctx context.Context, document *model.Document) (*model.Document, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *mockDocumentService) UploadDocumentFile(ctx context.Context, documentUUID, userUUID, filename, contentType string, data []byte) (*model.Document, error) {
	args := m.Called(ctx, documentUUID, userUUID, filename, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *mockDocumentService) GetDocument(ctx context.Context, documentUUID, userUUID string) (*model.GetDocumentResult, error) {
	args := m.Called(ctx, documentUUID, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GetDocumentResult), args.Error(1)
}

func (m *mockDocumentService) DeleteDocument(ctx context.Context, documentUUID, userUUID string) error {
	return m.Called(ctx, documentUUID, userUUID).Error(0)
}

func (m *mockDocumentService) ShareDocument(ctx context.Context, documentUUID, ownerUUID, targetUserUUID string) error {
	return m.Called(ctx, documentUUID, ownerUUID, targetUserUUID).Error(0)
}

func (m *mockDocumentService) ListSharedUsers(ctx context.Context, documentUUID, userUUID string) ([]model.SharedUser, error) {
	args := m.Called(ctx, documentUUID, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SharedUser), args.Error(1)
}

func (m *mockDocumentService) UpdateDocumentInfo(ctx context.Context, documentUUID, userUUID string, fields model.DocumentUpdate) (*model.Document, error) {
	args := m.Called(ctx, documentUUID, userUUID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *mockDocumentService) ListUserDocuments(ctx context.Context, ownerUUID string) ([]model.Document, error) {
	args := m.Called(ctx, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) GetUser(ctx context.Context, userUUID string) (*model.User, error) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) AssignRole(ctx context.Context, userUUID, roleName string) error {
	return m.Called(ctx, userUUID, roleName).Error(0)
}

func (m *mockUserService) ListUserRoles(ctx context.Context, userUUID string) ([]model.UserRole, error) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserRole), args.Error(1)
}

type mockLogService struct{ mock.Mock }

func (m *mockLogService) GetLog(ctx context.Context, id int64) (*model.LogEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LogEntry), args.Error(1)
}

func (m *mockLogService) ListUserLogs(ctx context.Context, userUUID string, offset, limit int) ([]model.LogEntry, error) {
	args := m.Called(ctx, userUUID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

type stubRunner struct {
	calls  int
	report model.CompressionReport
}

func (r *stubRunner) Run(ctx context.Context) model.CompressionReport {
	r.calls++
	return r.report
}

// withClaims : подставляет claims из заголовков X-Test-User / X-Test-Admin вместо JWT
func withClaims(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Header.Get("X-Test-User")
		if user == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims := &security.Claims{UserUUID: user, IsAdmin: r.Header.Get("X-Test-Admin") == "true"}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), security.UserContextKey, claims)))
	})
}

func newTestRouter(documents *mockDocumentService, users *mockUserService, logs *mockLogService, runner *stubRunner) *chi.Mux {
	documentHandler := handler.NewDocumentHandler(documents, &config.TTL{S3AndRedis: 900})
	userHandler := handler.NewUserHandler(users)
	logHandler := handler.NewLogHandler(logs)
	compressionHandler := handler.NewCompressionHandler(runner)

	router := chi.NewRouter()
	router.Use(withClaims)
	router.Route("/api/docs", func(r chi.Router) {
		r.Post("/", documentHandler.CreateDocument)
		r.Route("/{doc_id}", func(r chi.Router) {
			r.Get("/", documentHandler.GetDocument)
			r.Head("/", documentHandler.GetDocument)
			r.Patch("/", documentHandler.UpdateDocumentInfo)
			r.Delete("/", documentHandler.DeleteDocument)
			r.Put("/file", documentHandler.UploadDocumentFile)
			r.Post("/share", documentHandler.ShareDocument)
			r.Get("/shares", documentHandler.ListSharedUsers)
		})
	})
	router.Route("/api/users/{uuid}", func(r chi.Router) {
		r.Get("/", userHandler.GetUser)
		r.Get("/roles", userHandler.ListUserRoles)
		r.With(security.AdminOnly).Post("/roles", userHandler.AssignRole)
		r.Get("/documents", documentHandler.ListUserDocuments)
		r.Get("/logs", logHandler.ListUserLogs)
	})
	router.With(security.AdminOnly).Get("/api/logs/{id}", logHandler.GetLog)
	router.With(security.AdminOnly).Post("/api/compression/run", compressionHandler.RunCompression)

	return router
}
