package repositories

import (
	"context"
	"database/sql"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sppages/database"
	"sppages/domain/contracts"
)

const defaultJournalLimit = 100

// SqlitePageJournalRepository implements contracts.PageJournalRepository with read/write separation.
type SqlitePageJournalRepository struct {
	*BaseRepository
}

// NewSqlitePageJournalRepository creates a page journal repository.
func NewSqlitePageJournalRepository(database *database.Database) contracts.PageJournalRepository {
	return &SqlitePageJournalRepository{
		BaseRepository: NewBaseRepository(database),
	}
}

// Begin records a pending creation attempt and returns its id.
func (r *SqlitePageJournalRepository) Begin(ctx context.Context, entry *contracts.PageJournalEntry) (int64, error) {
	if err := validation.ValidateStruct(entry,
		validation.Field(&entry.Library, validation.Required),
		validation.Field(&entry.PageName, validation.Required),
	); err != nil {
		return 0, fmt.Errorf("invalid journal entry: %w", err)
	}

	result, err := r.WriteDB().ExecContext(ctx, `
		INSERT INTO page_journal (library, page_name, title, layout_type, status)
		VALUES (?, ?, ?, ?, ?)`,
		entry.Library, entry.PageName, entry.Title, entry.LayoutType, string(contracts.PageJournalPending))
	if err != nil {
		return 0, fmt.Errorf("insert journal entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read journal entry id: %w", err)
	}
	entry.ID = id
	entry.Status = contracts.PageJournalPending
	return id, nil
}

// MarkFileCreated records the path of the file once it exists remotely.
func (r *SqlitePageJournalRepository) MarkFileCreated(ctx context.Context, id int64, serverRelativeURL string) error {
	return r.update(ctx, id, `UPDATE page_journal
		SET server_relative_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, serverRelativeURL, id)
}

// Complete marks the attempt as fully created.
func (r *SqlitePageJournalRepository) Complete(ctx context.Context, id int64) error {
	return r.update(ctx, id, `UPDATE page_journal
		SET status = ?, error = '', updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, string(contracts.PageJournalCreated), id)
}

// Fail marks the attempt as failed with cause.
func (r *SqlitePageJournalRepository) Fail(ctx context.Context, id int64, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return r.update(ctx, id, `UPDATE page_journal
		SET status = ?, error = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, string(contracts.PageJournalFailed), message, id)
}

// MarkDeleted marks every entry pointing at serverRelativeURL as deleted.
// Deleting a page the journal never saw is not an error.
func (r *SqlitePageJournalRepository) MarkDeleted(ctx context.Context, serverRelativeURL string) error {
	if serverRelativeURL == "" {
		return nil
	}
	if _, err := r.WriteDB().ExecContext(ctx, `UPDATE page_journal
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE server_relative_url = ? COLLATE NOCASE`,
		string(contracts.PageJournalDeleted), serverRelativeURL); err != nil {
		return fmt.Errorf("mark journal entries deleted: %w", err)
	}
	return nil
}

// List returns entries newest first. An empty status lists every entry.
func (r *SqlitePageJournalRepository) List(ctx context.Context, status contracts.PageJournalStatus, limit int) ([]*contracts.PageJournalEntry, error) {
	if err := validation.Validate(string(status), validation.In(
		string(contracts.PageJournalPending),
		string(contracts.PageJournalCreated),
		string(contracts.PageJournalFailed),
		string(contracts.PageJournalDeleted),
	)); err != nil {
		return nil, ErrInvalidJournalStatus{Status: string(status)}
	}
	if limit <= 0 {
		limit = defaultJournalLimit
	}

	query := `SELECT id, library, page_name, title, layout_type, server_relative_url,
		status, error, created_at, updated_at
		FROM page_journal`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.ReadDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []*contracts.PageJournalEntry
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

func (r *SqlitePageJournalRepository) update(ctx context.Context, id int64, query string, args ...any) error {
	result, err := r.WriteDB().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update journal entry %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update journal entry %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", contracts.ErrJournalEntryNotFound, id)
	}
	return nil
}

func (r *SqlitePageJournalRepository) scanEntry(rows *sql.Rows) (*contracts.PageJournalEntry, error) {
	var (
		entry              contracts.PageJournalEntry
		status             string
		createdAt          string
		updatedAt          string
		title, layout, url sql.NullString
	)
	if err := rows.Scan(&entry.ID, &entry.Library, &entry.PageName, &title, &layout, &url,
		&status, &entry.Error, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan journal entry: %w", err)
	}
	entry.Title = r.FromNullString(title)
	entry.LayoutType = r.FromNullString(layout)
	entry.ServerRelativeURL = r.FromNullString(url)
	entry.Status = contracts.PageJournalStatus(status)
	entry.CreatedAt = r.ParseTimestamp(createdAt)
	entry.UpdatedAt = r.ParseTimestamp(updatedAt)
	return &entry, nil
}
