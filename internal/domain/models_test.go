package domain

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Single connection so the FK pragma applies to every statement.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	return db
}

func TestTableNames(t *testing.T) {
	if (Media{}).TableName() != "medias" {
		t.Fatalf("Media.TableName() = %q; want %q", (Media{}).TableName(), "medias")
	}
	if (Post{}).TableName() != "posts" {
		t.Fatalf("Post.TableName() = %q; want %q", (Post{}).TableName(), "posts")
	}
	if (Publication{}).TableName() != "publications" {
		t.Fatalf("Publication.TableName() = %q; want %q", (Publication{}).TableName(), "publications")
	}
}

func TestMigrations_Indexes_AndRestrict(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Media{}, &Post{}, &Publication{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	for _, tbl := range []any{&Media{}, &Post{}, &Publication{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&Media{}, "ux_media_title_username") {
		t.Fatalf("expected unique index ux_media_title_username on medias")
	}
	if !m.HasIndex(&Publication{}, "idx_publication_date") {
		t.Fatalf("expected index idx_publication_date on publications")
	}

	now := time.Now().UTC()
	md := &Media{Title: "Instagram", Username: "@acme"}
	if err := db.Create(md).Error; err != nil {
		t.Fatalf("insert media: %v", err)
	}
	if md.ID == 0 {
		t.Fatalf("expected generated media id")
	}

	// UNIQUE (title, username)
	if err := db.Create(&Media{Title: "Instagram", Username: "@acme"}).Error; err == nil {
		t.Fatalf("expected unique violation on duplicate media")
	}

	p := &Post{Title: "Launch", Text: "We are live"}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("insert post: %v", err)
	}
	pub := &Publication{MediaID: md.ID, PostID: p.ID, Date: now.Add(time.Hour)}
	if err := db.Omit("Media", "Post").Create(pub).Error; err != nil {
		t.Fatalf("insert publication: %v", err)
	}

	// RESTRICT: a referenced media/post cannot be deleted.
	if err := db.Delete(&Media{}, md.ID).Error; err == nil {
		t.Fatalf("expected FK violation deleting referenced media")
	}
	if err := db.Delete(&Post{}, p.ID).Error; err == nil {
		t.Fatalf("expected FK violation deleting referenced post")
	}

	// Dangling references are rejected by the store.
	bad := &Publication{MediaID: md.ID + 100, PostID: p.ID, Date: now}
	if err := db.Omit("Media", "Post").Create(bad).Error; err == nil {
		t.Fatalf("expected FK violation for dangling media id")
	}

	if err := db.Delete(&Publication{}, pub.ID).Error; err != nil {
		t.Fatalf("delete publication: %v", err)
	}
	if err := db.Delete(&Media{}, md.ID).Error; err != nil {
		t.Fatalf("delete media after publication removed: %v", err)
	}
}
