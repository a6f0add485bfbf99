package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-publications-backend/internal/domain"
	"github.com/tbourn/go-publications-backend/internal/timeline"
)

func seedRefs(t *testing.T, db *gorm.DB) (*domain.Media, *domain.Post) {
	t.Helper()
	ctx := context.Background()
	m, err := CreateMedia(ctx, db, "Instagram", "@acme")
	if err != nil {
		t.Fatalf("seed media: %v", err)
	}
	p, err := CreatePost(ctx, db, "Launch", "We are live", nil)
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return m, p
}

func TestCreatePublication_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m, p := seedRefs(t, db)

	date := time.Date(2030, 1, 2, 3, 4, 5, 6000, time.UTC)
	pub, err := CreatePublication(ctx, db, m.ID, p.ID, date)
	if err != nil {
		t.Fatalf("CreatePublication: %v", err)
	}
	got, err := GetPublication(ctx, db, pub.ID)
	if err != nil {
		t.Fatalf("GetPublication: %v", err)
	}
	if got.MediaID != m.ID || got.PostID != p.ID || !got.Date.Equal(date) {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestCreatePublication_DanglingReference(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m, p := seedRefs(t, db)

	if _, err := CreatePublication(ctx, db, m.ID+10, p.ID, time.Now()); !IsForeignKey(err) {
		t.Fatalf("expected FK error for missing media, got %v", err)
	}
	if _, err := CreatePublication(ctx, db, m.ID, p.ID+10, time.Now()); !IsForeignKey(err) {
		t.Fatalf("expected FK error for missing post, got %v", err)
	}
	n, _ := CountPublications(ctx, db, timeline.Window{})
	if n != 0 {
		t.Fatalf("no row should be persisted, got %d", n)
	}
}

func TestListPublications_Windows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m, p := seedRefs(t, db)

	now := time.Now().UTC().Truncate(time.Microsecond)
	past, _ := CreatePublication(ctx, db, m.ID, p.ID, now.Add(-24*time.Hour))
	soon, _ := CreatePublication(ctx, db, m.ID, p.ID, now.Add(24*time.Hour))
	later, _ := CreatePublication(ctx, db, m.ID, p.ID, now.Add(48*time.Hour))

	ids := func(list []domain.Publication) []int64 {
		out := make([]int64, 0, len(list))
		for _, x := range list {
			out = append(out, x.ID)
		}
		return out
	}
	equal := func(a, b []int64) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}
	yes, no := true, false
	inThreeDays := now.Add(72 * time.Hour)
	afterSoon := now.Add(36 * time.Hour)

	tests := []struct {
		name string
		w    timeline.Window
		want []int64
	}{
		{"all", timeline.Resolve(nil, nil, now), []int64{past.ID, soon.ID, later.ID}},
		{"published", timeline.Resolve(&yes, nil, now), []int64{past.ID}},
		{"scheduled", timeline.Resolve(&no, nil, now), []int64{soon.ID, later.ID}},
		{"published after future", timeline.Resolve(&yes, &inThreeDays, now), []int64{}},
		{"after", timeline.Resolve(nil, &afterSoon, now), []int64{later.ID}},
		{"scheduled after", timeline.Resolve(&no, &afterSoon, now), []int64{later.ID}},
	}
	seeded := []*domain.Publication{past, soon, later}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// the SQL window must agree with the in-memory predicate
			oracle := []int64{}
			for _, x := range seeded {
				if tc.w.Contains(x.Date) {
					oracle = append(oracle, x.ID)
				}
			}
			if !equal(oracle, tc.want) {
				t.Fatalf("Contains oracle %v disagrees with expected %v", oracle, tc.want)
			}

			list, err := ListPublications(ctx, db, tc.w)
			if err != nil {
				t.Fatalf("ListPublications: %v", err)
			}
			if got := ids(list); !equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			n, err := CountPublications(ctx, db, tc.w)
			if err != nil || n != int64(len(tc.want)) {
				t.Fatalf("CountPublications=%d err=%v, want %d", n, err, len(tc.want))
			}
		})
	}
}

func TestSaveAndDeletePublication(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m, p := seedRefs(t, db)

	pub, _ := CreatePublication(ctx, db, m.ID, p.ID, time.Now().UTC())
	newDate := time.Date(2031, 5, 5, 0, 0, 0, 0, time.UTC)
	pub.Date = newDate
	if err := SavePublication(ctx, db, pub); err != nil {
		t.Fatalf("SavePublication: %v", err)
	}
	got, _ := GetPublication(ctx, db, pub.ID)
	if !got.Date.Equal(newDate) {
		t.Fatalf("date not updated: %v", got.Date)
	}

	pub.MediaID = m.ID + 99
	if err := SavePublication(ctx, db, pub); !IsForeignKey(err) {
		t.Fatalf("expected FK error on dangling update, got %v", err)
	}

	if err := DeletePublication(ctx, db, pub.ID); err != nil {
		t.Fatalf("DeletePublication: %v", err)
	}
	if err := DeletePublication(ctx, db, pub.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCountPublicationsByParent_AndRestrict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m, p := seedRefs(t, db)
	_, _ = CreatePublication(ctx, db, m.ID, p.ID, time.Now().UTC())

	if n, err := CountPublicationsByMedia(ctx, db, m.ID); err != nil || n != 1 {
		t.Fatalf("CountPublicationsByMedia=%d err=%v", n, err)
	}
	if n, err := CountPublicationsByPost(ctx, db, p.ID); err != nil || n != 1 {
		t.Fatalf("CountPublicationsByPost=%d err=%v", n, err)
	}
	if err := DeleteMedia(ctx, db, m.ID); !IsForeignKey(err) {
		t.Fatalf("expected FK error deleting referenced media, got %v", err)
	}
	if err := DeletePost(ctx, db, p.ID); !IsForeignKey(err) {
		t.Fatalf("expected FK error deleting referenced post, got %v", err)
	}
}
