package sessionstore

import "errors"

var ErrNotFound = errors.New("session not found")
