package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
)

// MockPageLibrary implements contracts.PageLibrary for testing
type MockPageLibrary struct {
	mock.Mock
}

func (m *MockPageLibrary) URL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPageLibrary) FilesByName(ctx context.Context, name string) ([]*sharepoint.File, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sharepoint.File), args.Error(1)
}

func (m *MockPageLibrary) RootFolderServerRelativePath(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPageLibrary) AddTemplateFile(ctx context.Context, serverRelativePath string, kind sharepoint.TemplateFileType) (contracts.PageFile, error) {
	args := m.Called(ctx, serverRelativePath, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(contracts.PageFile), args.Error(1)
}

// MockPageFile implements contracts.PageFile for testing
type MockPageFile struct {
	mock.Mock
}

func (m *MockPageFile) ServerRelativeURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPageFile) GetItem(ctx context.Context) (contracts.ListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(contracts.ListItem), args.Error(1)
}

func (m *MockPageFile) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockListItem implements contracts.ListItem for testing
type MockListItem struct {
	mock.Mock
}

func (m *MockListItem) Fields(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockListItem) Update(ctx context.Context, fields map[string]any, eTag string) (*sharepoint.ItemUpdateResult, error) {
	args := m.Called(ctx, fields, eTag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharepoint.ItemUpdateResult), args.Error(1)
}

func (m *MockListItem) SetCommentsDisabled(ctx context.Context, disabled bool) error {
	args := m.Called(ctx, disabled)
	return args.Error(0)
}

// MockPageSite implements contracts.PageSite for testing
type MockPageSite struct {
	mock.Mock
}

func (m *MockPageSite) PageLibrary(title string) contracts.PageLibrary {
	args := m.Called(title)
	return args.Get(0).(contracts.PageLibrary)
}

func (m *MockPageSite) PageFile(serverRelativeURL string) contracts.PageFile {
	args := m.Called(serverRelativeURL)
	return args.Get(0).(contracts.PageFile)
}
