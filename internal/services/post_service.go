// Package services – PostService
//
// This file implements the post registry. Posts carry no uniqueness rule;
// like medias, they cannot be deleted while referenced by a publication.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-publications-backend/internal/domain"
	"github.com/tbourn/go-publications-backend/internal/repo"
)

// PostService manages Post records.
type PostService struct {
	DB *gorm.DB
}

// NewPostService constructs a PostService bound to db.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{DB: db}
}

// Create stores a new post. A blank image is stored as absent.
func (s *PostService) Create(ctx context.Context, title, text string, image *string) (*domain.Post, error) {
	title, text = normalizeText(title), normalizeBody(text)
	if title == "" || text == "" {
		return nil, ErrInvalidInput
	}
	return repo.CreatePost(ctx, s.DB, title, text, cleanImage(image))
}

// List returns all posts.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return repo.ListPosts(ctx, s.DB)
}

// FindOne returns post id or ErrPostNotFound.
func (s *PostService) FindOne(ctx context.Context, id int64) (*domain.Post, error) {
	p, err := repo.GetPost(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update applies a partial update. Title or text must be present; image
// alone is not a valid update. An empty image clears it.
func (s *PostService) Update(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error) {
	if patch.Empty() {
		return nil, ErrEmptyUpdate
	}

	p, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if v, ok := patch.Title.Get(); ok {
		if p.Title = normalizeText(v); p.Title == "" {
			return nil, ErrInvalidInput
		}
	}
	if v, ok := patch.Text.Get(); ok {
		if p.Text = normalizeBody(v); p.Text == "" {
			return nil, ErrInvalidInput
		}
	}
	if v, ok := patch.Image.Get(); ok {
		p.Image = cleanImage(&v)
	}

	if err := repo.SavePost(ctx, s.DB, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Remove deletes post id and returns the deleted record. It fails with
// ErrPostInUse while any publication references the post.
func (s *PostService) Remove(ctx context.Context, id int64) (*domain.Post, error) {
	var deleted *domain.Post
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := repo.GetPost(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		n, err := repo.CountPublicationsByPost(ctx, tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrPostInUse
		}
		if err := repo.DeletePost(ctx, tx, id); err != nil {
			if repo.IsForeignKey(err) {
				return ErrPostInUse
			}
			return err
		}
		deleted = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// Stats returns the post count and latest update time (for ETags).
func (s *PostService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return repo.PostsStats(ctx, s.DB)
}

func cleanImage(image *string) *string {
	if image == nil {
		return nil
	}
	v := normalizeBody(*image)
	if v == "" {
		return nil
	}
	return &v
}
