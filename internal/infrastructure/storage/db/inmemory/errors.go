package inmemory

import "errors"

var (
	// ErrSigningDirectiveAlreadyExists ...
	ErrSigningDirectiveAlreadyExists = errors.New("signing directive already exists")
)
