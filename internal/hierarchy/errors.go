package hierarchy

import (
	"errors"
	"fmt"
)

var (
	// ErrNoParserForType indicates a project type with no registered extractor
	ErrNoParserForType = errors.New("no parser for project type")

	// ErrRootDirectoryNotFound indicates the scan root is missing or not a directory
	ErrRootDirectoryNotFound = errors.New("root directory not found")

	// ErrFileUnreadable indicates a source file that could not be read or parsed
	ErrFileUnreadable = errors.New("file unreadable")
)

// NoParserForTypeError names the project type that could not be resolved.
type NoParserForTypeError struct {
	TypeName string
}

func (e *NoParserForTypeError) Error() string {
	return fmt.Sprintf("no parser available for project type '%s'", e.TypeName)
}

func (e *NoParserForTypeError) Unwrap() error { return ErrNoParserForType }

// RootDirectoryNotFoundError names the missing root.
type RootDirectoryNotFoundError struct {
	Path string
}

func (e *RootDirectoryNotFoundError) Error() string {
	return fmt.Sprintf("the directory '%s' does not exist", e.Path)
}

func (e *RootDirectoryNotFoundError) Unwrap() error { return ErrRootDirectoryNotFound }

// FileUnreadableError is logged, never returned from Build: the file simply
// contributes nothing.
type FileUnreadableError struct {
	Path string
	Err  error
}

func (e *FileUnreadableError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *FileUnreadableError) Unwrap() []error { return []error{ErrFileUnreadable, e.Err} }
