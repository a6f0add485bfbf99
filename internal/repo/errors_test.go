package repo

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsDuplicate(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{gorm.ErrDuplicatedKey, true},
		{fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey), true},
		{errors.New("UNIQUE constraint failed: medias.title, medias.username"), true},
		{errors.New(`ERROR: duplicate key value violates unique constraint "ux_media_title_username"`), true},
		{errors.New("FOREIGN KEY constraint failed"), false},
		{errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsDuplicate(tc.err); got != tc.want {
			t.Fatalf("IsDuplicate(%v)=%v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestIsForeignKey(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{gorm.ErrForeignKeyViolated, true},
		{errors.New("FOREIGN KEY constraint failed"), true},
		{errors.New(`ERROR: update or delete on table "medias" violates foreign key constraint`), true},
		{errors.New("UNIQUE constraint failed"), false},
	}
	for _, tc := range cases {
		if got := IsForeignKey(tc.err); got != tc.want {
			t.Fatalf("IsForeignKey(%v)=%v, want %v", tc.err, got, tc.want)
		}
	}
}
