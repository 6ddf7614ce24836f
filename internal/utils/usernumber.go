// Package utils holds small helpers shared across handlers and middleware.
package utils

import (
    "errors"
    "regexp"
    "strings"
)

// userNumberPattern matches a KU Leuven user number: one lowercase letter
// followed by exactly seven digits (r-number, u-number or b-number).
var userNumberPattern = regexp.MustCompile(`^[a-z]\d{7}$`)

// ErrInvalidUserNumber is returned when an identity string does not match
// the user number format.  Queries carrying an invalid user number must be
// rejected before any upstream call is made.
var ErrInvalidUserNumber = errors.New("invalid user number format")

// NormalizeUserNumber trims and case-folds the raw identity string, then
// validates it against the user number pattern.  The normalized (lowercase)
// value is returned on success.
func NormalizeUserNumber(raw string) (string, error) {
    uid := strings.ToLower(strings.TrimSpace(raw))
    if !userNumberPattern.MatchString(uid) {
        return "", ErrInvalidUserNumber
    }
    return uid, nil
}
