// Package services – MediaService
//
// This file implements the media registry: CRUD over social-media accounts
// with the (title, username) uniqueness rule and the deletion guard that
// keeps a media alive while publications reference it.
//
// The duplicate pre-checks are an early exit only. The unique index in the
// store is the arbiter under concurrent writes; its violation is mapped to
// ErrMediaExists as well.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-publications-backend/internal/domain"
	"github.com/tbourn/go-publications-backend/internal/repo"
)

// MediaService manages Media records.
type MediaService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewMediaService constructs a MediaService bound to db.
func NewMediaService(db *gorm.DB) *MediaService {
	return &MediaService{DB: db}
}

// Create registers a new media. It returns ErrMediaExists when the
// normalized (title, username) pair is already taken.
func (s *MediaService) Create(ctx context.Context, title, username string) (*domain.Media, error) {
	title, username = normalizeText(title), normalizeText(username)
	if title == "" || username == "" {
		return nil, ErrInvalidInput
	}

	if _, err := repo.FindMediaByIdentity(ctx, s.DB, title, username); err == nil {
		return nil, ErrMediaExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	m, err := repo.CreateMedia(ctx, s.DB, title, username)
	if err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrMediaExists
		}
		return nil, err
	}
	return m, nil
}

// List returns all medias.
func (s *MediaService) List(ctx context.Context) ([]domain.Media, error) {
	return repo.ListMedias(ctx, s.DB)
}

// FindOne returns media id or ErrMediaNotFound. The publication scheduler
// uses it to validate mediaId references.
func (s *MediaService) FindOne(ctx context.Context, id int64) (*domain.Media, error) {
	m, err := repo.GetMedia(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return m, nil
}

// Update applies a partial update. Absent fields keep their current value;
// the resulting pair must not belong to another media.
func (s *MediaService) Update(ctx context.Context, id int64, patch domain.MediaPatch) (*domain.Media, error) {
	if patch.Empty() {
		return nil, ErrEmptyUpdate
	}

	current, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	title, username := current.Title, current.Username
	if v, ok := patch.Title.Get(); ok {
		if title = normalizeText(v); title == "" {
			return nil, ErrInvalidInput
		}
	}
	if v, ok := patch.Username.Get(); ok {
		if username = normalizeText(v); username == "" {
			return nil, ErrInvalidInput
		}
	}

	other, err := repo.FindMediaByIdentity(ctx, s.DB, title, username)
	switch {
	case err == nil && other.ID != id:
		return nil, ErrMediaExists
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, err
	}

	if err := repo.UpdateMedia(ctx, s.DB, id, title, username); err != nil {
		switch {
		case repo.IsDuplicate(err):
			return nil, ErrMediaExists
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return s.FindOne(ctx, id)
}

// Remove deletes media id and returns the deleted record. It fails with
// ErrMediaInUse while any publication references the media.
func (s *MediaService) Remove(ctx context.Context, id int64) (*domain.Media, error) {
	var deleted *domain.Media
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.GetMedia(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMediaNotFound
			}
			return err
		}
		n, err := repo.CountPublicationsByMedia(ctx, tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrMediaInUse
		}
		if err := repo.DeleteMedia(ctx, tx, id); err != nil {
			if repo.IsForeignKey(err) {
				return ErrMediaInUse
			}
			return err
		}
		deleted = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// Stats returns the media count and latest update time (for ETags).
func (s *MediaService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return repo.MediasStats(ctx, s.DB)
}
