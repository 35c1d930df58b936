package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vertragsassistent/internal/cache"
	"vertragsassistent/internal/core"
)

// DocumentInfo is a stored document reference enriched with the derived,
// re-checked-on-read existence flag. The flag is never persisted.
type DocumentInfo struct {
	core.ContractDocument
	AbsolutePath string
	Exists       bool
}

// DocumentService resolves document paths against the database directory and
// checks whether the files are still on disk. Stat results are memoized in a
// TTL cache so listing a contract does not hammer the filesystem.
type DocumentService struct {
	storage DocumentStorage
	baseDir string
	exists  *cache.LRU[bool]
}

func NewDocumentService(storage DocumentStorage, baseDir string, ttl time.Duration) *DocumentService {
	return &DocumentService{
		storage: storage,
		baseDir: baseDir,
		exists:  cache.NewLRU[bool](1024, ttl),
	}
}

// AbsolutePath resolves a stored relative path (always slash-separated)
// against the database directory.
func (s *DocumentService) AbsolutePath(d core.ContractDocument) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(d.File))
}

func (s *DocumentService) ListDocuments(ctx context.Context, contractID int64) ([]DocumentInfo, error) {
	docs, err := s.storage.ListDocuments(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	out := make([]DocumentInfo, len(docs))
	for i, d := range docs {
		abs := s.AbsolutePath(d)
		out[i] = DocumentInfo{
			ContractDocument: d,
			AbsolutePath:     abs,
			Exists:           s.fileExists(abs),
		}
	}
	return out, nil
}

func (s *DocumentService) GetDocument(ctx context.Context, id int64) (DocumentInfo, error) {
	d, err := s.storage.GetDocument(ctx, id)
	if err != nil {
		return DocumentInfo{}, fmt.Errorf("get document: %w", err)
	}
	abs := s.AbsolutePath(d)
	return DocumentInfo{ContractDocument: d, AbsolutePath: abs, Exists: s.fileExists(abs)}, nil
}

func (s *DocumentService) SaveDocument(ctx context.Context, d core.ContractDocument) (core.ContractDocument, error) {
	saved, err := s.storage.SaveDocument(ctx, d)
	if err != nil {
		return core.ContractDocument{}, err
	}
	// Drop any stale stat result for the new path.
	s.exists.Delete(s.AbsolutePath(saved))
	return saved, nil
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id int64) error {
	return s.storage.DeleteDocument(ctx, id)
}

func (s *DocumentService) fileExists(abs string) bool {
	if exists, ok := s.exists.Get(abs); ok {
		return exists
	}
	info, err := os.Stat(abs)
	exists := err == nil && !info.IsDir()
	s.exists.Set(abs, exists)
	return exists
}
