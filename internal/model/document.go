package model

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcess    DocumentStatus = "process"
	StatusDownloaded DocumentStatus = "downloaded"
)

func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusUploaded, StatusProcess, StatusDownloaded:
		return true
	}
	return false
}

type Document struct {
	UUID             string         `db:"uuid" json:"uuid"`
	OwnerUUID        string         `db:"owner_uuid" json:"owner_uuid"`
	Name             string         `db:"name" json:"name"`
	Type             string         `db:"type" json:"type"`
	Size             *string        `db:"size" json:"size,omitempty"`
	Status           DocumentStatus `db:"status" json:"status"`
	FileURL          *string        `db:"file_url" json:"file_url,omitempty"`
	ProcessingSince  *time.Time     `db:"processing_since" json:"-"`
	ProcessingHolder *string        `db:"processing_holder" json:"-"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at" json:"deleted_at,omitempty"`
	UploadedAt       *time.Time     `db:"uploaded_at" json:"uploaded_at,omitempty"`
}

// HasStorageReference : документ без ссылки на хранилище ещё не был загружен
func (d *Document) HasStorageReference() bool {
	return d.FileURL != nil && *d.FileURL != ""
}

// DocumentUpdate : частичное обновление, nil-поля не меняются
type DocumentUpdate struct {
	Name       *string
	Type       *string
	Size       *string
	Status     *DocumentStatus
	FileURL    *string
	UploadedAt *time.Time
	UpdatedAt  *time.Time

	// IfStatus, IfFileURL : строка меняется, только если текущие значения совпадают
	IfStatus  *DocumentStatus
	IfFileURL *string
}

// Empty : в обновлении нет ни одного изменяемого поля
func (u DocumentUpdate) Empty() bool {
	return u.Name == nil && u.Type == nil && u.Size == nil && u.Status == nil &&
		u.FileURL == nil && u.UploadedAt == nil && u.UpdatedAt == nil
}

type DocumentShare struct {
	ID           int64      `db:"id" json:"id"`
	DocumentUUID string     `db:"document_uuid" json:"document_uuid"`
	UserUUID     string     `db:"user_uuid" json:"user_uuid"`
	SharedDate   time.Time  `db:"shared_date" json:"shared_date"`
	DownloadedAt *time.Time `db:"downloaded_at" json:"downloaded_at,omitempty"`
}

// SharedUser : пользователь, которому открыт доступ к документу
type SharedUser struct {
	UUID       string    `db:"uuid" json:"uuid"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	SharedDate time.Time `db:"shared_date" json:"shared_date"`
}

type GetDocumentResult struct {
	Document *Document
	GetURL   string // pre-signed URL, если у документа есть файл
}
