package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvforge/internal/csvexport"
	"cvforge/internal/domain"
	"cvforge/internal/port"
)

// processingTimeout bounds a single background transformation.
const processingTimeout = 5 * time.Minute

// exportBatchSize is how many completed documents are loaded per page during
// CSV export.
const exportBatchSize = 100

var contentTypes = map[domain.FileType]string{
	domain.FileTypePDF:  "application/pdf",
	domain.FileTypeDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	domain.FileTypeXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	domain.FileTypeXLS:  "application/vnd.ms-excel",
}

// UploadCVInput carries an uploaded file into the service.
type UploadCVInput struct {
	Filename    string
	Size        int64
	Reader      io.Reader
	NotifyEmail string
}

// CVServiceConfig holds the settings the service needs from config.
type CVServiceConfig struct {
	Bucket            string
	MaxUploadBytes    int64
	PresignExpirySecs int64
}

// CVService manages CV documents through their whole lifecycle: upload,
// asynchronous transformation, retrieval, editing, export and deletion.
type CVService interface {
	Upload(ctx context.Context, input UploadCVInput) (*domain.CVDocument, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CVDocument, error)
	List(ctx context.Context, filter port.CVListFilter) ([]domain.CVDocument, int, error)
	UpdateData(ctx context.Context, id uuid.UUID, data json.RawMessage) (*domain.CVDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	ExportCSV(ctx context.Context, w io.Writer) error

	// ProcessCV runs extraction and transformation for a stored document.
	// Called from the upload goroutine and the queue worker.
	ProcessCV(ctx context.Context, id uuid.UUID) error

	// TransformText runs the transformation chain over raw text without
	// touching storage.
	TransformText(ctx context.Context, text string, preferences map[string]any) (*domain.TransformResult, error)

	ProviderStatuses() []domain.ProviderStatus
}

type cvService struct {
	repo        port.CVRepository
	storage     port.ObjectStorage
	extractor   port.TextExtractor
	transformer port.CVTransformer
	email       port.EmailSender
	cfg         CVServiceConfig
}

// NewCVService creates a CVService.
func NewCVService(
	repo port.CVRepository,
	storage port.ObjectStorage,
	extractor port.TextExtractor,
	transformer port.CVTransformer,
	email port.EmailSender,
	cfg CVServiceConfig,
) CVService {
	return &cvService{
		repo:        repo,
		storage:     storage,
		extractor:   extractor,
		transformer: transformer,
		email:       email,
		cfg:         cfg,
	}
}

func (s *cvService) Upload(ctx context.Context, input UploadCVInput) (*domain.CVDocument, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input.Filename)), ".")
	fileType, ok := domain.FileTypeFromExtension(ext)
	if !ok {
		return nil, fmt.Errorf("%w: .%s", domain.ErrUnsupportedFileType, ext)
	}
	if input.Size > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", domain.ErrFileTooLarge, input.Size, s.cfg.MaxUploadBytes)
	}

	doc := &domain.CVDocument{
		ID:           uuid.New(),
		OriginalName: input.Filename,
		FileType:     fileType,
		FileSize:     input.Size,
		ContentType:  contentTypes[fileType],
		S3Bucket:     s.cfg.Bucket,
		Status:       domain.CVStatusUploaded,
		NotifyEmail:  input.NotifyEmail,
	}
	doc.S3Key = fmt.Sprintf("cvs/%s/%s", doc.ID, input.Filename)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      doc.S3Bucket,
		Key:         doc.S3Key,
		Body:        input.Reader,
		ContentType: doc.ContentType,
		Size:        input.Size,
	}); err != nil {
		return nil, fmt.Errorf("cvService.Upload: storing object: %w", err)
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("cvService.Upload: %w", err)
	}

	go s.processInBackground(doc.ID)

	return doc, nil
}

// processInBackground runs the transformation pipeline detached from the
// request, bounded by processingTimeout.
func (s *cvService) processInBackground(id uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), processingTimeout)
	defer cancel()

	if err := s.ProcessCV(ctx, id); err != nil {
		log.Printf("cvService.processInBackground: document %s: %v", id, err)
	}
}

func (s *cvService) ProcessCV(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("cvService.ProcessCV: %w", err)
	}

	if doc.Status != domain.CVStatusProcessing {
		if err := s.repo.UpdateStatus(ctx, id, domain.CVStatusProcessing); err != nil {
			return fmt.Errorf("cvService.ProcessCV: %w", err)
		}
	}

	data, err := s.storage.Download(ctx, doc.S3Bucket, doc.S3Key)
	if err != nil {
		return s.failProcessing(ctx, doc, fmt.Errorf("downloading object: %w", err))
	}

	text, err := s.extractor.Extract(data, doc.FileType)
	if err != nil {
		return s.failProcessing(ctx, doc, fmt.Errorf("extracting text: %w", err))
	}

	// The transformer cannot fail: provider errors end in basic parsing.
	cv, details := s.transformer.Transform(ctx, text, nil)

	dataJSON, err := json.Marshal(cv)
	if err != nil {
		return s.failProcessing(ctx, doc, fmt.Errorf("marshaling cv data: %w", err))
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return s.failProcessing(ctx, doc, fmt.Errorf("marshaling processing details: %w", err))
	}

	if err := s.repo.SaveResult(ctx, id, text, dataJSON, detailsJSON); err != nil {
		return fmt.Errorf("cvService.ProcessCV: %w", err)
	}

	log.Printf("cvService.ProcessCV: document %s completed via %s (%.2f confidence, %d provider errors)",
		id, details.ProviderUsed, details.ConfidenceScore, len(details.Errors))

	s.notify(ctx, doc, true)
	return nil
}

// failProcessing marks the document failed and reports the cause.
func (s *cvService) failProcessing(ctx context.Context, doc *domain.CVDocument, cause error) error {
	if err := s.repo.MarkFailed(ctx, doc.ID, cause.Error()); err != nil {
		log.Printf("cvService.failProcessing: document %s: %v", doc.ID, err)
	}
	s.notify(ctx, doc, false)
	return fmt.Errorf("cvService.ProcessCV: %w", cause)
}

func (s *cvService) notify(ctx context.Context, doc *domain.CVDocument, succeeded bool) {
	if doc.NotifyEmail == "" {
		return
	}
	if err := s.email.SendProcessedNotification(ctx, doc.NotifyEmail, doc.OriginalName, succeeded); err != nil {
		log.Printf("cvService.notify: document %s: %v", doc.ID, err)
	}
}

func (s *cvService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CVDocument, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *cvService) List(ctx context.Context, filter port.CVListFilter) ([]domain.CVDocument, int, error) {
	if filter.Status != "" && !domain.AllowedCVStatuses[filter.Status] {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrInvalidStatus, filter.Status)
	}
	return s.repo.List(ctx, filter)
}

func (s *cvService) UpdateData(ctx context.Context, id uuid.UUID, data json.RawMessage) (*domain.CVDocument, error) {
	var cv domain.CVData
	if err := json.Unmarshal(data, &cv); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCVData, err)
	}
	if cv.Header.Name == "" {
		return nil, fmt.Errorf("%w: header.name is required", domain.ErrInvalidCVData)
	}

	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.CVStatusCompleted {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrCVNotProcessed, doc.Status)
	}

	canonical, err := json.Marshal(cv)
	if err != nil {
		return nil, fmt.Errorf("cvService.UpdateData: %w", err)
	}

	if err := s.repo.UpdateTransformedData(ctx, id, canonical); err != nil {
		return nil, fmt.Errorf("cvService.UpdateData: %w", err)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *cvService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.S3Bucket, doc.S3Key); err != nil {
		// The row is still removed; orphaned objects are cheaper than
		// dangling rows pointing at deleted objects.
		log.Printf("cvService.Delete: document %s: %v", id, err)
	}

	return s.repo.Delete(ctx, id)
}

func (s *cvService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.storage.GetPresignedURL(ctx, doc.S3Bucket, doc.S3Key, s.cfg.PresignExpirySecs)
	if err != nil {
		return "", fmt.Errorf("cvService.GetDownloadURL: %w", err)
	}
	return url, nil
}

func (s *cvService) ExportCSV(ctx context.Context, w io.Writer) error {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("cvService.ExportCSV: %w", err)
	}

	writer := csvexport.NewWriter(w)
	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("cvService.ExportCSV: %w", err)
	}

	offset := 0
	for {
		docs, err := s.repo.ListCompleted(ctx, exportBatchSize, offset)
		if err != nil {
			return fmt.Errorf("cvService.ExportCSV: %w", err)
		}
		if len(docs) == 0 {
			break
		}
		if err := writer.WriteDocuments(docs); err != nil {
			return fmt.Errorf("cvService.ExportCSV: %w", err)
		}
		offset += len(docs)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("cvService.ExportCSV: %w", err)
	}
	return nil
}

func (s *cvService) TransformText(ctx context.Context, text string, preferences map[string]any) (*domain.TransformResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyContent
	}

	cv, details := s.transformer.Transform(ctx, text, preferences)
	return &domain.TransformResult{Data: cv, Details: details}, nil
}

func (s *cvService) ProviderStatuses() []domain.ProviderStatus {
	return s.transformer.ProviderStatuses()
}
