package sharepoint

import (
	"time"
)

// Web represents a SharePoint web/subsite
type Web struct {
	ID       string
	URL      string
	Title    string
	Template string
}

// List represents a SharePoint list or document library
type List struct {
	ID                         string
	Title                      string
	BaseTemplate               int
	ItemCount                  int
	Hidden                     bool
	RootFolderServerRelURL     string
	ListItemEntityTypeFullName string
}

// IsDocumentLibrary returns true if this is a document library (BaseTemplate 101)
func (l *List) IsDocumentLibrary() bool {
	return l.BaseTemplate == 101
}

// IsSitePagesLibrary returns true if this is the site pages library (BaseTemplate 119)
func (l *List) IsSitePagesLibrary() bool {
	return l.BaseTemplate == 119
}

// File represents a file stored in a document library
type File struct {
	UniqueID          string
	Name              string
	ServerRelativeURL string
	Length            int64
	TimeCreated       *time.Time
	TimeLastModified  *time.Time
}

// ItemUpdateResult is returned by a successful list item update.
type ItemUpdateResult struct {
	ListID string
	ID     int
	Fields map[string]any
}
