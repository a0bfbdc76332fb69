package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/repository"
)

// DocumentRepository implements project.DocumentRepository for SQLite.
// Only metadata lives here; the bytes are in the file store.
type DocumentRepository struct {
	db queryer
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db.DB}
}

const documentColumns = `id, project_id, name, mime_type, size, storage_path, uploaded_at`

// Create inserts document metadata
func (r *DocumentRepository) Create(ctx context.Context, d *project.Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (`+documentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.ProjectID, d.Name, d.MimeType, d.Size, d.StoragePath, d.UploadedAt,
	)
	if err != nil {
		return writeErr("create document", err)
	}
	return nil
}

// Get retrieves document metadata by ID
func (r *DocumentRepository) Get(ctx context.Context, id string) (*project.Document, error) {
	var d project.Document
	err := r.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id).Scan(
		&d.ID, &d.ProjectID, &d.Name, &d.MimeType, &d.Size, &d.StoragePath, &d.UploadedAt,
	)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &d, nil
}

// Delete removes document metadata
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return writeErr("delete document", err)
	}
	return requireRow(res)
}

// ListByProject returns a project's documents, newest upload first
func (r *DocumentRepository) ListByProject(ctx context.Context, projectID string) ([]project.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE project_id = ? ORDER BY uploaded_at DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []project.Document{}
	for rows.Next() {
		var d project.Document
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Name, &d.MimeType, &d.Size, &d.StoragePath, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}

// PathsForClient returns the storage paths of every document under the
// client's projects, so the files can be removed after a cascading delete.
func (r *DocumentRepository) PathsForClient(ctx context.Context, clientID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT d.storage_path
		FROM documents d
		JOIN projects p ON p.id = d.project_id
		WHERE p.client_id = ?
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list document paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan document path: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document path rows: %w", err)
	}
	return paths, nil
}
