package storage

import "errors"

var (
	KeyNotFoundErr = errors.New("key not found")
)
