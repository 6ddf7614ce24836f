// Package repository contains data access for the study-space catalog,
// separated from HTTP handlers. This file defines sentinel error values so
// higher layers can distinguish failure scenarios, e.g. translating a
// missing study space into an HTTP 404 instead of a generic database
// error.
package repository

import "errors"

// ErrSpaceNotFound is returned when a study space cannot be found in the
// catalog. Handlers should translate this into an HTTP 404 response.
var ErrSpaceNotFound = errors.New("study space not found")
