package service

import (
	"context"
	"errors"
	"fmt"
	"instashare-backend/config"
	"instashare-backend/internal/metrics"
	"instashare-backend/internal/model"
	"instashare-backend/internal/ports"
	"instashare-backend/internal/util"
	"log"
	"time"

	"github.com/google/uuid"
)

const archiveContentType = "application/zip"

// CompressionService : периодический проход по документам в статусе uploaded.
// Каждый документ скачивается, упаковывается в zip, загружается рядом с исходником
// и переводится в статус process. Ошибка одного документа не прерывает проход.
type CompressionService struct {
	documents   ports.CompressionDocuments
	storage     ports.ObjectStorage
	eventLog    ports.EventLog
	lease       ports.DocumentLease
	cache       ports.CacheRepository
	metrics     *metrics.PipelineMetrics
	systemActor string
	leaseTTL    time.Duration
}

func NewCompressionService(
	documents ports.CompressionDocuments,
	storage ports.ObjectStorage,
	eventLog ports.EventLog,
	lease ports.DocumentLease,
	cache ports.CacheRepository,
	pipelineMetrics *metrics.PipelineMetrics,
	cfg *config.PipelineConfig,
) *CompressionService {
	systemActor := cfg.SystemActorUUID
	if systemActor == "" {
		systemActor = config.DefaultSystemActorUUID
	}

	return &CompressionService{
		documents:   documents,
		storage:     storage,
		eventLog:    eventLog,
		lease:       lease,
		cache:       cache,
		metrics:     pipelineMetrics,
		systemActor: systemActor,
		leaseTTL:    config.MustDuration(cfg.LeaseTTL, config.DefaultLeaseTTL),
	}
}

// Run : один проход конвейера. Никогда не паникует и не возвращает ошибку,
// итог прохода только в отчёте и в журнале событий.
func (s *CompressionService) Run(ctx context.Context) (report model.CompressionReport) {
	report = model.CompressionReport{
		RunUUID:   uuid.NewString(),
		StartedAt: time.Now(),
	}
	owner := s.systemActor

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[CompressionService] паника во время прохода %s: %v", report.RunUUID, r)
			s.eventLog.Append(ctx, model.EventTaskError, owner,
				fmt.Sprintf("Error during document compression task: %v", r))
		}
		report.CompletedAt = time.Now()
		s.metrics.ObserveRun(report.CompletedAt.Sub(report.StartedAt))
		log.Printf("[CompressionService] проход %s: просмотрено %d, сжато %d, пропущено %d, ошибок %d",
			report.RunUUID, report.Scanned, report.Compressed, report.Skipped, report.Failed)
	}()

	for document, err := range s.documents.FindByStatus(ctx, model.StatusUploaded) {
		if err != nil {
			s.eventLog.Append(ctx, model.EventTaskError, owner,
				fmt.Sprintf("Error during document compression task: %v", err))
			break
		}

		report.Scanned++
		owner = document.OwnerUUID

		outcome := s.processDocument(ctx, report.RunUUID, document)
		switch outcome {
		case metrics.OutcomeCompressed:
			report.Compressed++
		case metrics.OutcomeSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
		s.metrics.ObserveDocument(outcome)
	}

	return report
}

// processDocument : обработка одного документа, возвращает исход для отчёта.
// OutcomeSkipped означает тихий пропуск, OutcomeFailed пропуск с записью об ошибке.
func (s *CompressionService) processDocument(ctx context.Context, runUUID string, document model.Document) (outcome string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[CompressionService] паника при обработке документа %s: %v", document.UUID, r)
			s.failure(ctx, document, fmt.Sprintf("unexpected failure: %v", r))
			outcome = metrics.OutcomeFailed
		}
	}()

	if !document.HasStorageReference() {
		return metrics.OutcomeSkipped
	}

	ref, err := model.ParseStorageReference(*document.FileURL)
	if err != nil {
		s.failure(ctx, document, fmt.Sprintf("invalid file_url: %v", err))
		return metrics.OutcomeFailed
	}

	acquired, err := s.lease.Acquire(ctx, document.UUID, runUUID, s.leaseTTL)
	if err != nil {
		s.failure(ctx, document, fmt.Sprintf("lease not acquired: %v", err))
		return metrics.OutcomeFailed
	}
	if !acquired {
		log.Printf("[CompressionService] документ %s обрабатывается другим проходом", document.UUID)
		return metrics.OutcomeSkipped
	}
	defer func() {
		if err := s.lease.Release(context.WithoutCancel(ctx), document.UUID, runUUID); err != nil {
			log.Printf("[CompressionService] не удалось освободить документ %s: %v", document.UUID, err)
		}
	}()

	// после выборки строку мог изменить другой проход или новая загрузка файла
	current, err := s.documents.Get(ctx, document.UUID)
	if errors.Is(err, model.ErrNotFound) {
		log.Printf("[CompressionService] документ %s удалён после выборки", document.UUID)
		return metrics.OutcomeSkipped
	}
	if err != nil {
		s.failure(ctx, document, fmt.Sprintf("failed to reload document: %v", err))
		return metrics.OutcomeFailed
	}
	if current.Status != model.StatusUploaded || !current.HasStorageReference() || *current.FileURL != *document.FileURL {
		log.Printf("[CompressionService] документ %s изменился после выборки, пропускаем", document.UUID)
		return metrics.OutcomeSkipped
	}

	s.eventLog.Append(ctx, model.EventTaskExecution, document.OwnerUUID,
		fmt.Sprintf("Scheduled compression task started at: %s for document %s (ID: %s)",
			time.Now().Format(time.RFC3339), document.Name, document.UUID))

	data, err := s.storage.Download(ctx, ref.Bucket, ref.Path)
	if err != nil {
		s.failure(ctx, document, fmt.Sprintf("failed to download %s: %v", ref, err))
		return metrics.OutcomeFailed
	}

	memberName := util.ArchiveMemberName(document.Name, ref.Path)
	archive, err := util.ZipSingleFile(memberName, data, time.Now())
	if err != nil {
		s.failure(ctx, document, fmt.Sprintf("failed to compress: %v", err))
		return metrics.OutcomeFailed
	}

	archiveKey := fmt.Sprintf("%s/%s.zip", document.UUID, util.ArchiveBaseName(memberName))
	if err := s.storage.Upload(ctx, ref.Bucket, archiveKey, archive, archiveContentType, true); err != nil {
		s.failure(ctx, document, fmt.Sprintf("failed to upload %s/%s: %v", ref.Bucket, archiveKey, err))
		return metrics.OutcomeFailed
	}

	publicURL := s.storage.PublicURL(ref.Bucket, archiveKey)
	status := model.StatusProcess
	expectedStatus := model.StatusUploaded
	updatedAt := time.Now()

	_, err = s.documents.Update(ctx, document.UUID, model.DocumentUpdate{
		Status:    &status,
		FileURL:   &publicURL,
		UpdatedAt: &updatedAt,
		IfStatus:  &expectedStatus,
		IfFileURL: document.FileURL,
	})
	if err != nil {
		if archiveKey != ref.Path {
			s.discardArchive(ctx, document.UUID, ref.Bucket, archiveKey, publicURL)
		}
		s.failure(ctx, document, fmt.Sprintf("failed to update document: %v", err))
		return metrics.OutcomeFailed
	}

	if s.cache != nil {
		if err := s.cache.DeleteDocument(ctx, document.UUID); err != nil {
			log.Printf("[CompressionService] ошибка инвалидации кэша документа %s: %v", document.UUID, err)
		}
	}

	s.metrics.ObserveBytes(len(data), len(archive))
	s.eventLog.Append(ctx, model.EventCompressionSuccess, document.OwnerUUID,
		fmt.Sprintf("Document %s (ID: %s) successfully compressed and updated.", document.Name, document.UUID))

	log.Printf("[CompressionService] документ %s сжат, новая ссылка %s", document.UUID, publicURL)
	return metrics.OutcomeCompressed
}

// discardArchive : удаляет загруженный архив, если строка документа на него не ссылается.
// Если состояние строки узнать не удалось, архив остаётся в хранилище.
func (s *CompressionService) discardArchive(ctx context.Context, documentUUID, bucket, archiveKey, publicURL string) {
	ctx = context.WithoutCancel(ctx)

	current, err := s.documents.Get(ctx, documentUUID)
	switch {
	case errors.Is(err, model.ErrNotFound):
	case err != nil:
		log.Printf("[CompressionService] архив %s/%s оставлен, состояние документа неизвестно: %v", bucket, archiveKey, err)
		return
	case current.FileURL != nil && *current.FileURL == publicURL:
		log.Printf("[CompressionService] документ %s уже ссылается на архив %s/%s, архив оставлен", documentUUID, bucket, archiveKey)
		return
	}

	if err := s.storage.Delete(ctx, bucket, archiveKey); err != nil {
		log.Printf("[CompressionService] архив %s/%s остался в хранилище: %v", bucket, archiveKey, err)
	}
}

func (s *CompressionService) failure(ctx context.Context, document model.Document, reason string) {
	s.eventLog.Append(ctx, model.EventTaskError, document.OwnerUUID,
		fmt.Sprintf("Error during compression of document %s (ID: %s): %s", document.Name, document.UUID, reason))
}
