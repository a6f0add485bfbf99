// Package services defines the business logic for medias, posts, and
// publications. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Input errors (BadRequest).
var (
	// ErrEmptyUpdate is returned when a partial update carries none of the
	// updatable fields.
	ErrEmptyUpdate = errors.New("update body is required")

	// ErrInvalidInput is returned when a required text field is blank after
	// normalization.
	ErrInvalidInput = errors.New("required field is empty")
)

// Lookup errors (NotFound).
var (
	// ErrMediaNotFound indicates that the referenced media does not exist.
	ErrMediaNotFound = errors.New("media not found")

	// ErrPostNotFound indicates that the referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrPublicationNotFound indicates that the publication does not exist.
	ErrPublicationNotFound = errors.New("publication not found")

	// ErrReferenceNotFound is returned when the store rejects a publication
	// write because a referenced media or post vanished between validation
	// and persistence.
	ErrReferenceNotFound = errors.New("referenced media or post not found")
)

// ErrMediaExists is returned when another media already holds the same
// (title, username) pair (Conflict).
var ErrMediaExists = errors.New("media already exists")

// Forbidden operations.
var (
	// ErrMediaInUse is returned when deleting a media that still has
	// publications.
	ErrMediaInUse = errors.New("the media is scheduled to be published or has already been posted")

	// ErrPostInUse is returned when deleting a post that still has
	// publications.
	ErrPostInUse = errors.New("the post is scheduled to be published or has already been posted")

	// ErrPastDate is returned when an update would move a publication into
	// the past.
	ErrPastDate = errors.New("cannot update a publication into the past")
)
