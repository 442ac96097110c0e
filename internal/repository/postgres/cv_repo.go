package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cvforge/internal/domain"
	"cvforge/internal/port"
)

type cvRepo struct {
	db *sqlx.DB
}

// NewCVRepo creates a PostgreSQL-backed CVRepository.
func NewCVRepo(db *sqlx.DB) port.CVRepository {
	return &cvRepo{db: db}
}

const cvColumns = `id, original_name, file_type, file_size, content_type,
	s3_bucket, s3_key, status, notify_email, extracted_text,
	transformed_data, processing_details, processing_error,
	processed_at, created_at, updated_at`

func (r *cvRepo) Create(ctx context.Context, doc *domain.CVDocument) error {
	query := `
		INSERT INTO cv_documents (
			id, original_name, file_type, file_size, content_type,
			s3_bucket, s3_key, status, notify_email
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		doc.ID, doc.OriginalName, doc.FileType, doc.FileSize, doc.ContentType,
		doc.S3Bucket, doc.S3Key, doc.Status, doc.NotifyEmail,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("cvRepo.Create: %w", err)
	}
	return nil
}

func (r *cvRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CVDocument, error) {
	query := fmt.Sprintf(`SELECT %s FROM cv_documents WHERE id = $1`, cvColumns)

	var doc domain.CVDocument
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCVNotFound
		}
		return nil, fmt.Errorf("cvRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *cvRepo) List(ctx context.Context, filter port.CVListFilter) ([]domain.CVDocument, int, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []any{}
	if filter.Status != "" {
		where = "WHERE status = $1"
		args = append(args, filter.Status)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM cv_documents %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("cvRepo.List count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM cv_documents %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		cvColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	docs := []domain.CVDocument{}
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("cvRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *cvRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CVStatus) error {
	query := `UPDATE cv_documents SET status = $1, updated_at = now() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("cvRepo.UpdateStatus: %w", err)
	}
	return checkAffected(result, "cvRepo.UpdateStatus")
}

func (r *cvRepo) SaveResult(ctx context.Context, id uuid.UUID, extractedText string, data, details json.RawMessage) error {
	query := `
		UPDATE cv_documents
		SET status = $1, extracted_text = $2, transformed_data = $3,
			processing_details = $4, processing_error = '',
			processed_at = now(), updated_at = now()
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		domain.CVStatusCompleted, extractedText, data, details, id)
	if err != nil {
		return fmt.Errorf("cvRepo.SaveResult: %w", err)
	}
	return checkAffected(result, "cvRepo.SaveResult")
}

func (r *cvRepo) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	query := `
		UPDATE cv_documents
		SET status = $1, processing_error = $2, updated_at = now()
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, domain.CVStatusFailed, message, id)
	if err != nil {
		return fmt.Errorf("cvRepo.MarkFailed: %w", err)
	}
	return checkAffected(result, "cvRepo.MarkFailed")
}

func (r *cvRepo) UpdateTransformedData(ctx context.Context, id uuid.UUID, data json.RawMessage) error {
	query := `
		UPDATE cv_documents
		SET transformed_data = $1, updated_at = now()
		WHERE id = $2 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, data, id, domain.CVStatusCompleted)
	if err != nil {
		return fmt.Errorf("cvRepo.UpdateTransformedData: %w", err)
	}
	return checkAffected(result, "cvRepo.UpdateTransformedData")
}

func (r *cvRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cv_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("cvRepo.Delete: %w", err)
	}
	return checkAffected(result, "cvRepo.Delete")
}

func (r *cvRepo) ClaimStale(ctx context.Context, cutoff time.Time, limit int) ([]domain.CVDocument, error) {
	query := fmt.Sprintf(`
		UPDATE cv_documents
		SET status = $1, updated_at = now()
		WHERE id IN (
			SELECT id FROM cv_documents
			WHERE status = $2 AND updated_at < $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING %s`, cvColumns)

	docs := []domain.CVDocument{}
	err := r.db.SelectContext(ctx, &docs, query,
		domain.CVStatusProcessing, domain.CVStatusUploaded, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("cvRepo.ClaimStale: %w", err)
	}
	return docs, nil
}

func (r *cvRepo) ListCompleted(ctx context.Context, limit, offset int) ([]domain.CVDocument, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM cv_documents
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3`, cvColumns)

	docs := []domain.CVDocument{}
	if err := r.db.SelectContext(ctx, &docs, query, domain.CVStatusCompleted, limit, offset); err != nil {
		return nil, fmt.Errorf("cvRepo.ListCompleted: %w", err)
	}
	return docs, nil
}

func checkAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return domain.ErrCVNotFound
	}
	return nil
}
