package repositories

import "fmt"

// ErrInvalidJournalStatus occurs when a journal query names a status the table does not store
type ErrInvalidJournalStatus struct {
	Status string
}

func (e ErrInvalidJournalStatus) Error() string {
	return fmt.Sprintf("invalid page journal status %q", e.Status)
}
