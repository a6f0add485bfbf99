package domain

import (
	"encoding/json"
	"time"
)

// Optional carries a value together with an explicit presence flag, so that
// partial updates can distinguish "field omitted" from "field set to the zero
// value".
//
// When decoded from JSON, a key that is missing or explicitly null leaves the
// Optional unset.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Set: true} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.Value, o.Set }

// UnmarshalJSON implements json.Unmarshaler. A JSON null is a no-op.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value, o.Set = v, true
	return nil
}

// MediaPatch is a partial update of a Media.
type MediaPatch struct {
	Title    Optional[string]
	Username Optional[string]
}

// Empty reports whether no field is present.
func (p MediaPatch) Empty() bool { return !p.Title.Set && !p.Username.Set }

// PostPatch is a partial update of a Post.
type PostPatch struct {
	Title Optional[string]
	Text  Optional[string]
	Image Optional[string]
}

// Empty reports whether neither title nor text is present. Image alone does
// not make a valid update.
func (p PostPatch) Empty() bool { return !p.Title.Set && !p.Text.Set }

// PublicationPatch is a partial update of a Publication.
type PublicationPatch struct {
	MediaID Optional[int64]
	PostID  Optional[int64]
	Date    Optional[time.Time]
}

// Empty reports whether no field is present.
func (p PublicationPatch) Empty() bool { return !p.MediaID.Set && !p.PostID.Set && !p.Date.Set }
