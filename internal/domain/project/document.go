package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/repository"
)

// UploadRequest carries a document to store for a project.
type UploadRequest struct {
	ProjectID string
	Name      string
	MimeType  string
	Data      []byte
}

// ListDocuments returns a project's documents, newest first.
func (s *Service) ListDocuments(ctx context.Context, projectID string) ([]Document, error) {
	return s.documents.ListByProject(ctx, projectID)
}

// UploadDocument writes the bytes to the file store, then records the
// metadata. The file is removed again if the record cannot be written.
func (s *Service) UploadDocument(ctx context.Context, req UploadRequest) (*Document, error) {
	v := apperr.Violations{}
	if strings.TrimSpace(req.ProjectID) == "" {
		v["project_id"] = "required"
	}
	if strings.TrimSpace(req.Name) == "" {
		v["name"] = "required"
	}
	if err := v.Check(); err != nil {
		return nil, err
	}
	if _, err := s.ensureUnlocked(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	path, err := s.files.Write(id+"_"+req.Name, req.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentFile, err)
	}

	doc := &Document{
		ID:          id,
		ProjectID:   req.ProjectID,
		Name:        strings.TrimSpace(req.Name),
		MimeType:    req.MimeType,
		Size:        int64(len(req.Data)),
		StoragePath: path,
		UploadedAt:  time.Now(),
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		s.removeFile(path)
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating document: %w", err)
	}

	s.logger.Info("document uploaded", "document_id", doc.ID, "project_id", doc.ProjectID, "size", doc.Size)
	return doc, nil
}

// DownloadDocument returns a document's metadata and bytes.
func (s *Service) DownloadDocument(ctx context.Context, id string) (*Document, []byte, error) {
	doc, err := s.getDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.files.Read(doc.StoragePath)
	if err != nil {
		s.logger.Warn("failed to read document file", "document_id", id, "path", doc.StoragePath, "error", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrDocumentFile, err)
	}
	return doc, data, nil
}

// DeleteDocument removes the backing file best-effort, then the record.
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	doc, err := s.getDocument(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.ensureUnlocked(ctx, doc.ProjectID); err != nil {
		return err
	}

	s.removeFile(doc.StoragePath)

	if err := s.documents.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

func (s *Service) getDocument(ctx context.Context, id string) (*Document, error) {
	doc, err := s.documents.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return doc, nil
}
