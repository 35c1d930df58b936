package services

import (
	"context"
	"fmt"

	"vertragsassistent/internal/core"
)

// TagService manages the shared tag catalogue. Name uniqueness is enforced
// here at the creation boundary so filtering can rely on identity alone.
type TagService struct {
	storage TagStorage
}

func NewTagService(storage TagStorage) *TagService {
	return &TagService{storage: storage}
}

// ListTags returns all tags ordered by name with their usage counts.
func (s *TagService) ListTags(ctx context.Context) ([]core.Tag, error) {
	tags, err := s.storage.ListTagsWithCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (s *TagService) CreateTag(ctx context.Context, name string) (core.Tag, error) {
	return s.storage.CreateTag(ctx, name)
}

func (s *TagService) RenameTag(ctx context.Context, id int64, name string) error {
	return s.storage.RenameTag(ctx, id, name)
}

func (s *TagService) DeleteTag(ctx context.Context, id int64) error {
	return s.storage.DeleteTag(ctx, id)
}

func (s *TagService) AssignTag(ctx context.Context, contractID, tagID int64) error {
	return s.storage.AssignTag(ctx, contractID, tagID)
}

func (s *TagService) UnassignTag(ctx context.Context, contractID, tagID int64) error {
	return s.storage.UnassignTag(ctx, contractID, tagID)
}
