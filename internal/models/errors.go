package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrExtract ErrorType = iota
	ErrManifest
	ErrFileOp
	ErrSigning
	ErrReport
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrExtract:
		return "Extract"
	case ErrManifest:
		return "Manifest"
	case ErrFileOp:
		return "FileOp"
	case ErrSigning:
		return "Signing"
	case ErrReport:
		return "Report"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// AnalyzeError represents an error during package analysis
type AnalyzeError struct {
	Type    ErrorType
	Archive string
	Err     error
}

// Error implements the error interface
func (e *AnalyzeError) Error() string {
	if e.Archive != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Archive, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *AnalyzeError) Unwrap() error {
	return e.Err
}
