package utils

import (
	"errors"
	"testing"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		s       string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0012", 12, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{" 42", 0, true},
		{"", 0, true},
		{"999999999999999999999999", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseID(tc.s)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseID(%q) err = %v; wantErr %v", tc.s, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseID(%q) = %d; want %d", tc.s, got, tc.want)
		}
	}
}

func TestParseOptionalBool(t *testing.T) {
	if b, err := ParseOptionalBool(""); b != nil || err != nil {
		t.Fatalf("empty: got %v %v", b, err)
	}
	for in, want := range map[string]bool{"true": true, "TRUE": true, " True ": true, "false": false, "False": false} {
		b, err := ParseOptionalBool(in)
		if err != nil || b == nil || *b != want {
			t.Fatalf("ParseOptionalBool(%q) = %v %v; want %v", in, b, err, want)
		}
	}
	for _, in := range []string{"1", "0", "t", "F", "yes", "truthy"} {
		if b, err := ParseOptionalBool(in); !errors.Is(err, ErrInvalidBool) || b != nil {
			t.Fatalf("ParseOptionalBool(%q) = %v %v; want ErrInvalidBool", in, b, err)
		}
	}
}
