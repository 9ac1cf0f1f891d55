package internal

import (
	"fmt"
	"strings"
)

// StorageError represents errors accessing files of the output or cache directories
type StorageError struct {
	Path string
	Op   string // "mkdir", "open", "write", "read"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors parsing a search log
type ParseError struct {
	Path string
	Line int // 0 when the file could not be read at all
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnknownModelError is returned when a model name has no registered factory
type UnknownModelError struct {
	Name  string
	Known []string
}

func (e *UnknownModelError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown click model: %s", e.Name)
	}
	return fmt.Sprintf("unknown click model: %s (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

// ExportError represents errors during a probability export pass
type ExportError struct {
	Kind string // "click", "satisfaction"
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// LedgerError represents errors reading or appending the performance ledger
type LedgerError struct {
	Path string
	Op   string // "append", "read", "open"
	Err  error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}
