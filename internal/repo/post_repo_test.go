package repo

import (
	"context"
	"errors"
	"testing"
)

func TestCreatePost_WithAndWithoutImage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	img := "https://cdn.example.com/launch.png"
	p1, err := CreatePost(ctx, db, "Launch", "We are live", &img)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	p2, err := CreatePost(ctx, db, "Teaser", "Soon", nil)
	if err != nil {
		t.Fatalf("CreatePost without image: %v", err)
	}

	got1, _ := GetPost(ctx, db, p1.ID)
	if got1.Image == nil || *got1.Image != img {
		t.Fatalf("image not persisted: %+v", got1)
	}
	got2, _ := GetPost(ctx, db, p2.ID)
	if got2.Image != nil {
		t.Fatalf("expected nil image, got %q", *got2.Image)
	}
}

func TestGetPost_NotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := GetPost(context.Background(), db, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPosts_And_SavePost(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p, _ := CreatePost(ctx, db, "A", "a", nil)
	_, _ = CreatePost(ctx, db, "B", "b", nil)

	p.Text = "changed"
	if err := SavePost(ctx, db, p); err != nil {
		t.Fatalf("SavePost: %v", err)
	}
	list, err := ListPosts(ctx, db)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(list) != 2 || list[0].Text != "changed" || list[1].Title != "B" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestDeletePost(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p, _ := CreatePost(ctx, db, "A", "a", nil)

	if err := DeletePost(ctx, db, p.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if err := DeletePost(ctx, db, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
