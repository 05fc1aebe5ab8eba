package contracts

import (
	"context"

	"sppages/domain/sharepoint"
)

// PageLibrary is the document library a client side page is created in.
type PageLibrary interface {
	// URL returns the REST URL of the library, used in error messages.
	URL() string

	// FilesByName returns the root folder files whose name equals name exactly.
	FilesByName(ctx context.Context, name string) ([]*sharepoint.File, error)

	// RootFolderServerRelativePath returns the decoded server relative path of the root folder.
	RootFolderServerRelativePath(ctx context.Context) (string, error)

	// AddTemplateFile creates a blank templated file at serverRelativePath.
	AddTemplateFile(ctx context.Context, serverRelativePath string, kind sharepoint.TemplateFileType) (PageFile, error)
}

// PageFile is the file backing a client side page.
type PageFile interface {
	ServerRelativeURL() string
	GetItem(ctx context.Context) (ListItem, error)
	Delete(ctx context.Context) error
}

// ListItem is the list item associated with a page file.
type ListItem interface {
	// Fields returns the raw field values of the item.
	Fields(ctx context.Context) (map[string]any, error)

	// Update merges fields into the item. eTag is sent as If-Match; "*" is unconditional.
	Update(ctx context.Context, fields map[string]any, eTag string) (*sharepoint.ItemUpdateResult, error)

	SetCommentsDisabled(ctx context.Context, disabled bool) error
}

// PageSite resolves libraries and files of the web pages live in. Resolution is
// local; no request is issued until an operation is called on the result.
type PageSite interface {
	PageLibrary(title string) PageLibrary
	PageFile(serverRelativeURL string) PageFile
}
