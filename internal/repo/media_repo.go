// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Media model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a media is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - A duplicate (title, username) pair surfaces as the raw unique-violation
//     error; callers classify it with IsDuplicate.
//
// This repository is designed to be wrapped by services.MediaService, which
// enforces the registry rules (conflicts, deletion guard).
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-publications-backend/internal/domain"
)

// CreateMedia inserts a new Media row and returns it with its generated id.
func CreateMedia(ctx context.Context, db *gorm.DB, title, username string) (*domain.Media, error) {
	m := &domain.Media{Title: title, Username: username}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListMedias returns every media ordered by id.
func ListMedias(ctx context.Context, db *gorm.DB) ([]domain.Media, error) {
	out := []domain.Media{}
	err := db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// GetMedia fetches a media by id, or ErrNotFound.
func GetMedia(ctx context.Context, db *gorm.DB, id int64) (*domain.Media, error) {
	var m domain.Media
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindMediaByIdentity returns the media holding (title, username), or
// ErrNotFound.
func FindMediaByIdentity(ctx context.Context, db *gorm.DB, title, username string) (*domain.Media, error) {
	var m domain.Media
	err := db.WithContext(ctx).
		Where("title = ? AND username = ?", title, username).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMedia overwrites title and username of media id. It returns
// ErrNotFound when no row matched.
func UpdateMedia(ctx context.Context, db *gorm.DB, id int64, title, username string) error {
	res := db.WithContext(ctx).
		Model(&domain.Media{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "username": username})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMedia removes media id. It returns ErrNotFound when no row matched.
func DeleteMedia(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Delete(&domain.Media{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
