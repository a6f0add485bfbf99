// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Post model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-publications-backend/internal/domain"
)

// CreatePost inserts a new post row.
func CreatePost(ctx context.Context, db *gorm.DB, title, text string, image *string) (*domain.Post, error) {
	p := &domain.Post{Title: title, Text: text, Image: image}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListPosts returns every post ordered by id.
func ListPosts(ctx context.Context, db *gorm.DB) ([]domain.Post, error) {
	out := []domain.Post{}
	err := db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// GetPost fetches a post by id, or ErrNotFound.
func GetPost(ctx context.Context, db *gorm.DB, id int64) (*domain.Post, error) {
	var p domain.Post
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePost writes all columns of p.
func SavePost(ctx context.Context, db *gorm.DB, p *domain.Post) error {
	return db.WithContext(ctx).Save(p).Error
}

// DeletePost removes post id. It returns ErrNotFound when no row matched.
func DeletePost(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Delete(&domain.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
