// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Publication model.
//
// Time-partitioned reads take a timeline.Window resolved by the caller
// against its own notion of "now"; the repository never reads the clock.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-publications-backend/internal/domain"
	"github.com/tbourn/go-publications-backend/internal/timeline"
)

// CreatePublication inserts a publication binding postID to mediaID at date.
// Dangling references surface as a foreign-key error (see IsForeignKey).
func CreatePublication(ctx context.Context, db *gorm.DB, mediaID, postID int64, date time.Time) (*domain.Publication, error) {
	p := &domain.Publication{MediaID: mediaID, PostID: postID, Date: date}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetPublication fetches a publication by id, or ErrNotFound.
func GetPublication(ctx context.Context, db *gorm.DB, id int64) (*domain.Publication, error) {
	var p domain.Publication
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPublications returns the publications whose date lies inside w,
// ordered by date then id. An empty window short-circuits without a query.
func ListPublications(ctx context.Context, db *gorm.DB, w timeline.Window) ([]domain.Publication, error) {
	out := []domain.Publication{}
	if w.Empty {
		return out, nil
	}
	err := applyWindow(db.WithContext(ctx), w).
		Order("date ASC, id ASC").
		Find(&out).Error
	return out, err
}

// CountPublications returns how many publications lie inside w.
func CountPublications(ctx context.Context, db *gorm.DB, w timeline.Window) (int64, error) {
	if w.Empty {
		return 0, nil
	}
	var n int64
	err := applyWindow(db.WithContext(ctx).Model(&domain.Publication{}), w).Count(&n).Error
	return n, err
}

// SavePublication writes all columns of p.
func SavePublication(ctx context.Context, db *gorm.DB, p *domain.Publication) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

// DeletePublication removes publication id. It returns ErrNotFound when no
// row matched.
func DeletePublication(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Delete(&domain.Publication{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountPublicationsByMedia returns how many publications reference mediaID.
func CountPublicationsByMedia(ctx context.Context, db *gorm.DB, mediaID int64) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Publication{}).Where("media_id = ?", mediaID).Count(&n).Error
	return n, err
}

// CountPublicationsByPost returns how many publications reference postID.
func CountPublicationsByPost(ctx context.Context, db *gorm.DB, postID int64) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Publication{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}

// applyWindow adds the exclusive date bounds of w to q.
func applyWindow(q *gorm.DB, w timeline.Window) *gorm.DB {
	if w.After != nil {
		q = q.Where("date > ?", w.After.UTC())
	}
	if w.Before != nil {
		q = q.Where("date < ?", w.Before.UTC())
	}
	return q
}
