// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned by ParseID for anything other than a positive
// base-10 integer.
var ErrInvalidID = errors.New("id must be a positive integer")

// ParseID parses a path identifier as a positive int64.
//
// Example:
//
//	id, err := utils.ParseID("42")  // 42, nil
//	_, err = utils.ParseID("abc")   // ErrInvalidID
//	_, err = utils.ParseID("0")     // ErrInvalidID
func ParseID(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return n, nil
}

// ErrInvalidBool is returned by ParseOptionalBool for anything other than
// "true" or "false".
var ErrInvalidBool = errors.New(`value must be "true" or "false"`)

// ParseOptionalBool parses an optional boolean query value. An empty string
// yields (nil, nil); only "true" and "false" (any case) are accepted.
func ParseOptionalBool(s string) (*bool, error) {
	var b bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "true":
		b = true
	case "false":
		b = false
	default:
		return nil, ErrInvalidBool
	}
	return &b, nil
}
