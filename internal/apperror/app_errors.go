package apperror

import "errors"

var (
	ErrPreferenceNotFound = errors.New("preference not found")
	ErrOutboxFull         = errors.New("sound outbox is full")
	ErrUnknownBackend     = errors.New("unknown preferences backend")
	ErrInvalidCell        = errors.New("invalid cell index")
)
