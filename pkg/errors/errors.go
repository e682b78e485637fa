// Package errors provides structured error handling for hdkit.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes returned by the hdkit CLI.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input (path, key, address, mnemonic)
	ExitNotFound = 4 // Resource not found
	ExitConfig   = 5 // Invalid or missing configuration
)

// KitError is the structured error type for hdkit.
type KitError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *KitError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *KitError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for KitError. Two KitErrors match when their codes match.
func (e *KitError) Is(target error) bool {
	var t *KitError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &KitError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &KitError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNotFound = &KitError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Path errors.
	ErrInvalidPath = &KitError{
		Code:     "INVALID_PATH",
		Message:  "invalid derivation path",
		ExitCode: ExitInput,
	}

	ErrInvalidPathElement = &KitError{
		Code:     "INVALID_PATH_ELEMENT",
		Message:  "invalid derivation path element",
		ExitCode: ExitInput,
	}

	ErrPathTooDeep = &KitError{
		Code:     "PATH_TOO_DEEP",
		Message:  "derivation path exceeds maximum depth",
		ExitCode: ExitInput,
	}

	// Key and address validation errors.
	ErrInvalidPublicKey = &KitError{
		Code:     "INVALID_PUBLIC_KEY",
		Message:  "invalid public key",
		ExitCode: ExitInput,
	}

	ErrWrongCurve = &KitError{
		Code:     "WRONG_CURVE",
		Message:  "public key is bound to the wrong curve",
		ExitCode: ExitInput,
	}

	ErrMissingOption = &KitError{
		Code:     "MISSING_OPTION",
		Message:  "required chain option is missing",
		ExitCode: ExitConfig,
	}

	ErrUnsupportedChain = &KitError{
		Code:     "UNSUPPORTED_CHAIN",
		Message:  "unsupported chain",
		ExitCode: ExitInput,
	}

	ErrInvalidAddress = &KitError{
		Code:     "INVALID_ADDRESS",
		Message:  "invalid address format",
		ExitCode: ExitInput,
	}

	ErrInvalidChecksum = &KitError{
		Code:     "INVALID_CHECKSUM",
		Message:  "invalid address checksum",
		ExitCode: ExitInput,
	}

	// Legacy mnemonic errors.
	ErrInvalidWordCount = &KitError{
		Code:     "INVALID_WORD_COUNT",
		Message:  "mnemonic word count is not valid",
		ExitCode: ExitInput,
	}

	ErrUnknownWord = &KitError{
		Code:     "UNKNOWN_WORD",
		Message:  "mnemonic word not found in word list",
		ExitCode: ExitInput,
	}

	ErrLanguageNotFound = &KitError{
		Code:     "LANGUAGE_NOT_FOUND",
		Message:  "unable to detect mnemonic language",
		ExitCode: ExitInput,
	}

	ErrLanguageAmbiguous = &KitError{
		Code:     "LANGUAGE_AMBIGUOUS",
		Message:  "mnemonic matches more than one language",
		ExitCode: ExitInput,
	}

	ErrChunkOverflow = &KitError{
		Code:     "CHUNK_OVERFLOW",
		Message:  "mnemonic word group does not fit in 32 bits",
		ExitCode: ExitInput,
	}

	ErrInvalidEntropy = &KitError{
		Code:     "INVALID_ENTROPY",
		Message:  "entropy length is not valid",
		ExitCode: ExitInput,
	}

	ErrUnknownLanguage = &KitError{
		Code:     "UNKNOWN_LANGUAGE",
		Message:  "unknown mnemonic language",
		ExitCode: ExitNotFound,
	}

	ErrWordListInvalid = &KitError{
		Code:     "WORD_LIST_INVALID",
		Message:  "word list failed to load",
		ExitCode: ExitGeneral,
	}

	// Config-specific errors.
	ErrConfigNotFound = &KitError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &KitError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitConfig,
	}
)

// New creates a new KitError with the given code and message.
func New(code, message string) *KitError {
	return &KitError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ke *KitError
	if errors.As(err, &ke) {
		return &KitError{
			Code:       ke.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ke.Message),
			Details:    ke.Details,
			Suggestion: ke.Suggestion,
			Cause:      err,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KitError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ke *KitError
	if errors.As(err, &ke) {
		return &KitError{
			Code:       ke.Code,
			Message:    ke.Message,
			Details:    details,
			Suggestion: ke.Suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KitError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ke *KitError
	if errors.As(err, &ke) {
		return &KitError{
			Code:       ke.Code,
			Message:    ke.Message,
			Details:    ke.Details,
			Suggestion: suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KitError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// WithCause attaches an underlying cause to a sentinel, keeping its code.
func WithCause(err, cause error) error {
	if err == nil {
		return nil
	}

	var ke *KitError
	if errors.As(err, &ke) {
		return &KitError{
			Code:       ke.Code,
			Message:    ke.Message,
			Details:    ke.Details,
			Suggestion: ke.Suggestion,
			Cause:      cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KitError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Cause:    cause,
		ExitCode: ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ke *KitError
	if errors.As(err, &ke) {
		return ke.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ke *KitError
	if errors.As(err, &ke) {
		return ke.Code
	}
	return "GENERAL_ERROR"
}

// Detail returns a single detail value from an error, or "" when absent.
func Detail(err error, key string) string {
	var ke *KitError
	if errors.As(err, &ke) {
		return ke.Details[key]
	}
	return ""
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
