package contracts

import (
	"context"
	"time"
)

// PageJournalStatus is the lifecycle state of a page creation attempt.
type PageJournalStatus string

const (
	PageJournalPending PageJournalStatus = "pending"
	PageJournalCreated PageJournalStatus = "created"
	PageJournalFailed  PageJournalStatus = "failed"
	PageJournalDeleted PageJournalStatus = "deleted"
)

// PageJournalEntry records one page creation attempt.
// A failed entry with a non-empty ServerRelativeURL points at a file that exists
// on the server without its page metadata.
type PageJournalEntry struct {
	ID                int64             `json:"id"`
	Library           string            `json:"library"`
	PageName          string            `json:"pageName"`
	Title             string            `json:"title"`
	LayoutType        string            `json:"layoutType"`
	ServerRelativeURL string            `json:"serverRelativeUrl,omitempty"`
	Status            PageJournalStatus `json:"status"`
	Error             string            `json:"error,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// PageJournalRepository persists page creation attempts.
type PageJournalRepository interface {
	Begin(ctx context.Context, entry *PageJournalEntry) (int64, error)
	MarkFileCreated(ctx context.Context, id int64, serverRelativeURL string) error
	Complete(ctx context.Context, id int64) error
	Fail(ctx context.Context, id int64, cause error) error
	MarkDeleted(ctx context.Context, serverRelativeURL string) error
	List(ctx context.Context, status PageJournalStatus, limit int) ([]*PageJournalEntry, error)
}
