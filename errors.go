package sidebot

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request, turn or dataset row failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotConfigured indicates no completion service credential is set.
	ErrNotConfigured = errors.New("completion service not configured")

	// ErrBusy indicates a submit arrived while a reply is still pending.
	ErrBusy = errors.New("handler busy: reply pending")

	// ErrEmptyDataset indicates a dataset with no rows.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrReadOnly indicates a statement that would modify the dataset.
	ErrReadOnly = errors.New("only read-only queries are allowed")
)
