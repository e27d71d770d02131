package library

import "errors"

// Typed rejection reasons returned by mutators. A rejected mutation leaves
// both the in-memory collection and the snapshot file untouched.
var (
	// ErrInvalidExtension means the path's extension is not a supported media format.
	ErrInvalidExtension = errors.New("unsupported media extension")

	// ErrDuplicatePath means a character with the same source path already exists.
	ErrDuplicatePath = errors.New("character path already in library")

	// ErrIndexOutOfRange means the character index does not exist.
	ErrIndexOutOfRange = errors.New("character index out of range")
)
