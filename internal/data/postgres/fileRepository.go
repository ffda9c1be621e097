package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
)

type fileRow struct {
	Id           string    `db:"id"`
	OwnerId      string    `db:"owner_id"`
	OriginalName string    `db:"original_name"`
	StoredName   string    `db:"stored_name"`
	SizeBytes    int64     `db:"size_bytes"`
	FileType     string    `db:"file_type"`
	Tags         []byte    `db:"tags"`
	TotalPages   int       `db:"total_pages"`
	TotalChunks  int       `db:"total_chunks"`
	Removed      bool      `db:"removed"`
	CreatedTime  time.Time `db:"created_time"`
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) fileModel.FileStore {
	return &fileRepository{db: db}
}

func (r *fileRepository) SaveFile(ctx context.Context, file fileModel.FileRecord) error {
	tags, err := json.Marshal(file.Tags)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO files (id, owner_id, original_name, stored_name, size_bytes, file_type, tags, total_pages, total_chunks, removed, created_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.ExecContext(ctx, query, file.Id, file.OwnerId, file.OriginalName, file.StoredName,
		file.SizeBytes, file.FileType, tags, file.TotalPages, file.TotalChunks, file.Removed, file.CreatedTime)
	return err
}

func (r *fileRepository) GetFile(ctx context.Context, fileId string) (fileModel.FileRecord, bool) {
	var row fileRow
	query := `SELECT * FROM files WHERE id = $1 AND removed = false`
	err := r.db.GetContext(ctx, &row, query, fileId)
	if err != nil {
		return fileModel.FileRecord{}, false
	}
	return toRecord(row), true
}

func (r *fileRepository) GetUserFiles(ctx context.Context, ownerId string) ([]fileModel.FileRecord, error) {
	var rows []fileRow
	query := `SELECT * FROM files WHERE owner_id = $1 AND removed = false ORDER BY created_time DESC`
	if err := r.db.SelectContext(ctx, &rows, query, ownerId); err != nil {
		return nil, err
	}
	files := make([]fileModel.FileRecord, 0, len(rows))
	for _, row := range rows {
		files = append(files, toRecord(row))
	}
	return files, nil
}

func (r *fileRepository) UpdateChunksAndPages(ctx context.Context, fileId string, chunks int, pages int) error {
	query := `UPDATE files SET total_chunks = $2, total_pages = $3 WHERE id = $1 AND removed = false`
	return r.mustUpdateOne(ctx, fileId, query, fileId, chunks, pages)
}

func (r *fileRepository) UpdateTags(ctx context.Context, fileId string, tags []string) error {
	encoded, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	query := `UPDATE files SET tags = $2 WHERE id = $1 AND removed = false`
	return r.mustUpdateOne(ctx, fileId, query, fileId, encoded)
}

func (r *fileRepository) RemoveFile(ctx context.Context, fileId string) error {
	query := `UPDATE files SET removed = true WHERE id = $1 AND removed = false`
	return r.mustUpdateOne(ctx, fileId, query, fileId)
}

func (r *fileRepository) AddCleanupMarker(ctx context.Context, marker fileModel.CleanupMarker) error {
	query := `
		INSERT INTO upload_cleanups (file_id, path, marked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (file_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, marker.FileId, marker.Path, marker.MarkedAt)
	return err
}

func (r *fileRepository) ListCleanupMarkers(ctx context.Context) ([]fileModel.CleanupMarker, error) {
	var markers []fileModel.CleanupMarker
	query := `SELECT file_id, path, marked_at FROM upload_cleanups ORDER BY marked_at`
	if err := r.db.SelectContext(ctx, &markers, query); err != nil {
		return nil, err
	}
	return markers, nil
}

func (r *fileRepository) ClearCleanupMarker(ctx context.Context, fileId string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM upload_cleanups WHERE file_id = $1`, fileId)
	return err
}

func (r *fileRepository) mustUpdateOne(ctx context.Context, fileId string, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("file %s not found", fileId)
	}
	return nil
}

func toRecord(row fileRow) fileModel.FileRecord {
	var tags []string
	if len(row.Tags) > 0 {
		if err := json.Unmarshal(row.Tags, &tags); err != nil {
			tags = nil
		}
	}
	return fileModel.FileRecord{
		Id:           row.Id,
		OwnerId:      row.OwnerId,
		OriginalName: row.OriginalName,
		StoredName:   row.StoredName,
		SizeBytes:    row.SizeBytes,
		FileType:     row.FileType,
		Tags:         tags,
		TotalPages:   row.TotalPages,
		TotalChunks:  row.TotalChunks,
		Removed:      row.Removed,
		CreatedTime:  row.CreatedTime,
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
