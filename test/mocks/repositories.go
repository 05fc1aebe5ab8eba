package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sppages/domain/contracts"
)

// MockPageJournalRepository implements contracts.PageJournalRepository for testing
type MockPageJournalRepository struct {
	mock.Mock
}

func (m *MockPageJournalRepository) Begin(ctx context.Context, entry *contracts.PageJournalEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPageJournalRepository) MarkFileCreated(ctx context.Context, id int64, serverRelativeURL string) error {
	args := m.Called(ctx, id, serverRelativeURL)
	return args.Error(0)
}

func (m *MockPageJournalRepository) Complete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPageJournalRepository) Fail(ctx context.Context, id int64, cause error) error {
	args := m.Called(ctx, id, cause)
	return args.Error(0)
}

func (m *MockPageJournalRepository) MarkDeleted(ctx context.Context, serverRelativeURL string) error {
	args := m.Called(ctx, serverRelativeURL)
	return args.Error(0)
}

func (m *MockPageJournalRepository) List(ctx context.Context, status contracts.PageJournalStatus, limit int) ([]*contracts.PageJournalEntry, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contracts.PageJournalEntry), args.Error(1)
}
