package helpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
	"sppages/test/mocks"
)

// PageMocks holds the collaborator mocks of a page service for easy injection
type PageMocks struct {
	Site    *mocks.MockPageSite
	Library *mocks.MockPageLibrary
	File    *mocks.MockPageFile
	Item    *mocks.MockListItem
	Journal *mocks.MockPageJournalRepository
}

// NewPageMocks creates a new set of page mocks. The site resolves every
// library title to Library.
func NewPageMocks() *PageMocks {
	m := &PageMocks{
		Site:    &mocks.MockPageSite{},
		Library: &mocks.MockPageLibrary{},
		File:    &mocks.MockPageFile{},
		Item:    &mocks.MockListItem{},
		Journal: &mocks.MockPageJournalRepository{},
	}
	m.Site.On("PageLibrary", mock.Anything).Return(m.Library).Maybe()
	m.Library.On("URL").Return("https://test.sharepoint.com/_api/web/lists/getByTitle('Site%20Pages')").Maybe()
	return m
}

// ExpectSuccessfulCreate sets up a library that accepts pageName under root
// and a file whose item accepts any update.
func (m *PageMocks) ExpectSuccessfulCreate(root, pageName string) {
	path := root + "/" + pageName
	m.Library.On("FilesByName", mock.Anything, pageName).Return([]*sharepoint.File{}, nil)
	m.Library.On("RootFolderServerRelativePath", mock.Anything).Return(root, nil)
	m.Library.On("AddTemplateFile", mock.Anything, path, sharepoint.TemplateFileTypeClientSidePage).Return(m.File, nil)
	m.File.On("ServerRelativeURL").Return(path).Maybe()
	m.File.On("GetItem", mock.Anything).Return(m.Item, nil)
	m.Item.On("Update", mock.Anything, mock.Anything, "*").Return(&sharepoint.ItemUpdateResult{ID: 1}, nil)
}

// ExpectJournalBegin sets up the journal to hand out id for the next attempt
func (m *PageMocks) ExpectJournalBegin(id int64) {
	m.Journal.On("Begin", mock.Anything, mock.AnythingOfType("*contracts.PageJournalEntry")).Return(id, nil).Once()
}

// AssertAllExpectations verifies all mock expectations were met
func (m *PageMocks) AssertAllExpectations(t mock.TestingT) {
	m.Site.AssertExpectations(t)
	m.Library.AssertExpectations(t)
	m.File.AssertExpectations(t)
	m.Item.AssertExpectations(t)
	m.Journal.AssertExpectations(t)
}

// TestData provides simple builders for test data
type TestData struct{}

// NewTestData creates a test data builder
func NewTestData() *TestData {
	return &TestData{}
}

// JournalEntry creates a journal entry for testing
func (td *TestData) JournalEntry(id int64, name string, status contracts.PageJournalStatus) *contracts.PageJournalEntry {
	return &contracts.PageJournalEntry{
		ID:                id,
		Library:           "Site Pages",
		PageName:          name,
		Title:             name,
		LayoutType:        "Article",
		ServerRelativeURL: "/SitePages/" + name,
		Status:            status,
		CreatedAt:         *TestTime(1),
		UpdatedAt:         *TestTime(0),
	}
}

// TwoColumnLayout is a layout document with one section of two columns
const TwoColumnLayout = `
sections:
  - columns:
      - factor: 6
        controls:
          - text: "<p>Left</p>"
      - factor: 6
        controls:
          - text: Right
`

// Helper for common test context
func TestContext() context.Context {
	return context.Background()
}

// Helper for time-based tests
func TestTime(daysAgo int) *time.Time {
	t := time.Now().AddDate(0, 0, -daysAgo)
	return &t
}
