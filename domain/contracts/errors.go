package contracts

import "errors"

// Common errors for domain contracts
var (
	// ErrJournalEntryNotFound occurs when a journal update targets an unknown entry
	ErrJournalEntryNotFound = errors.New("page journal entry not found")
)
