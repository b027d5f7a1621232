package domain

import (
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeUnknownKind       = "UNKNOWN_COMPONENT_KIND"
	ErrCodeMalformedGSC      = "MALFORMED_GSC"
	ErrCodeCalculationError  = "CALCULATION_ERROR"
	ErrCodeUnsupportedMetric = "UNSUPPORTED_METRIC"
	ErrCodeUndefinedBaseline = "UNDEFINED_BASELINE"
	ErrCodeImmutableVersion  = "IMMUTABLE_VERSION"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewValidationFailedError creates an error for a component that failed validation
func NewValidationFailedError(component string, cause error) error {
	return NewDomainError(ErrCodeValidationFailed, fmt.Sprintf("component failed validation: %s", component), cause)
}

// NewUnknownKindError creates an error for an unrecognized component kind
func NewUnknownKindError(kind string) error {
	return NewDomainError(ErrCodeUnknownKind, fmt.Sprintf("unknown component kind: %s", kind), nil)
}

// NewMalformedGSCError creates an error for an invalid general system characteristics vector
func NewMalformedGSCError(message string) error {
	return NewDomainError(ErrCodeMalformedGSC, message, nil)
}

// NewCalculationError creates a calculation error
func NewCalculationError(message string, cause error) error {
	return NewDomainError(ErrCodeCalculationError, message, cause)
}

// NewUnsupportedMetricError creates an error for an unrecognized trend metric
func NewUnsupportedMetricError(metric string) error {
	return NewDomainError(ErrCodeUnsupportedMetric, fmt.Sprintf("unsupported trend metric: %s", metric), nil)
}

// NewUndefinedBaselineError creates an error for a trend whose baseline value is zero
func NewUndefinedBaselineError(metric string) error {
	return NewDomainError(ErrCodeUndefinedBaseline, fmt.Sprintf("percentage change undefined: first %s value is zero", metric), nil)
}

// NewImmutableVersionError creates an error for a mutation attempt on a non-draft estimate
func NewImmutableVersionError(version int, status string) error {
	return NewDomainError(ErrCodeImmutableVersion, fmt.Sprintf("estimate version %d is %s and cannot be modified", version, status), nil)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewParseError creates a parse error
func NewParseError(file string, cause error) error {
	return NewDomainError(ErrCodeParseError, fmt.Sprintf("failed to parse file: %s", file), cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}
