package model

import "errors"

// ErrFormat marks a malformed snapshot document: a failed decode, a
// missing top-level key, or an enum value outside the closed set.
var ErrFormat = errors.New("invalid snapshot format")
