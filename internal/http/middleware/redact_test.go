package middleware

import (
	"net/http"
	"testing"
)

func TestRedactor_Scrub(t *testing.T) {
	r := newRedactor(RedactOptions{})
	cases := map[string]string{
		"":                        "",
		"published=true":          "published=true",
		"contact a@b.io":          "contact [REDACTED:email]",
		"call 212 555 1212":       "call [REDACTED:phone]",
		"123e4567-e89b-12d3-a456-426614174000": "[REDACTED:id]",
		"after=2025-06-01":        "after=2025-06-01",
	}
	for in, want := range cases {
		if got := r.scrub(in); got != want {
			t.Errorf("scrub(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestRedactor_Headers(t *testing.T) {
	r := newRedactor(RedactOptions{MaskHeaders: []string{" x-token ", ""}})
	h := http.Header{}
	h.Set("Authorization", "Bearer x")
	h.Set("X-Token", "t")
	h.Add("Accept", "application/json")
	h.Add("Accept", "text/plain")

	got := r.headers(h)
	if got["Authorization"] != "[REDACTED]" || got["X-Token"] != "[REDACTED]" {
		t.Fatalf("expected masked headers, got %v", got)
	}
	if got["Accept"] != "application/json, text/plain" {
		t.Fatalf("multi-value header = %q", got["Accept"])
	}
}
