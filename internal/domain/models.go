// Package domain defines the persistence models for medias, posts, and
// publications. These types are mapped with GORM and form the core data layer
// of the publication scheduler.
package domain

import (
	"time"
)

// Media represents a social-media account a post can be published to,
// identified by the platform title and the account username.
//
// Fields:
//   - ID: generated integer primary key.
//   - Title: platform name (e.g. "Instagram").
//   - Username: account handle on that platform (e.g. "@acme").
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//
// The pair (Title, Username) is unique (enforced by ux_media_title_username).
type Media struct {
	ID        int64     `json:"id"        gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title"     gorm:"type:varchar(255);not null;uniqueIndex:ux_media_title_username,priority:1"`
	Username  string    `json:"username"  gorm:"type:varchar(255);not null;uniqueIndex:ux_media_title_username,priority:2"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Media.
func (Media) TableName() string { return "medias" }

// Post is a reusable content payload, independent of when or where it is
// published.
//
// Fields:
//   - ID: generated integer primary key.
//   - Title / Text: required content.
//   - Image: optional image URL (nil when absent).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Post struct {
	ID        int64     `json:"id"        gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title"     gorm:"type:varchar(255);not null"`
	Text      string    `json:"text"      gorm:"type:text;not null"`
	Image     *string   `json:"image,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Post.
func (Post) TableName() string { return "posts" }

// Publication binds a Post to a Media at a point in time. Whether it is
// "published" or "scheduled" is never stored; it is derived by comparing Date
// with the current time (see package timeline).
//
// Media and Post are restricted on delete: a Media or Post cannot be removed
// while a publication still references it.
type Publication struct {
	ID        int64     `json:"id"        gorm:"primaryKey;autoIncrement"`
	MediaID   int64     `json:"mediaId"   gorm:"not null;index:idx_publication_media"`
	PostID    int64     `json:"postId"    gorm:"not null;index:idx_publication_post"`
	Date      time.Time `json:"date"      gorm:"not null;index:idx_publication_date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Media Media `json:"-" gorm:"foreignKey:MediaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Post  Post  `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Publication.
func (Publication) TableName() string { return "publications" }
