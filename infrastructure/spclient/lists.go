package spclient

import (
	"context"
	"fmt"
	"strconv"

	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
)

const listSelect = "Id,Title,BaseTemplate,ItemCount,Hidden,ListItemEntityTypeFullName,RootFolder/ServerRelativeUrl"

// Lists is the SP.ListCollection of a web.
type Lists struct {
	client *Client
	url    string
}

// URL returns the REST URL of the collection.
func (l *Lists) URL() string {
	return l.url
}

// Get retrieves every list of the web.
func (l *Lists) Get(ctx context.Context) ([]*sharepoint.List, error) {
	data, err := l.client.do(ctx, methodGet, l.url+"?$select="+listSelect+"&$expand=RootFolder", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get lists: %w", err)
	}
	items, err := decodeValidatedCollection[listJSON](data, "lists")
	if err != nil {
		return nil, err
	}
	out := make([]*sharepoint.List, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// GetByTitle addresses a list by title.
func (l *Lists) GetByTitle(title string) *List {
	return &List{client: l.client, url: joinPath(l.url, fmt.Sprintf("getByTitle('%s')", literal(title)))}
}

// GetByID addresses a list by id.
func (l *Lists) GetByID(id string) *List {
	return &List{client: l.client, url: fmt.Sprintf("%s(guid'%s')", l.url, literal(id))}
}

// List is an SP.List resource.
type List struct {
	client *Client
	url    string
}

// URL returns the REST URL of the list.
func (l *List) URL() string {
	return l.url
}

// Get retrieves the list metadata.
func (l *List) Get(ctx context.Context) (*sharepoint.List, error) {
	data, err := l.client.do(ctx, methodGet, l.url+"?$select="+listSelect+"&$expand=RootFolder", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	list, err := decodeValidated[listJSON](data, "list")
	if err != nil {
		return nil, err
	}
	return list.toDomain(), nil
}

// Items returns the item collection of the list.
func (l *List) Items() *Items {
	return &Items{client: l.client, url: joinPath(l.url, "items")}
}

// RootFolder returns the root folder of the list.
func (l *List) RootFolder() *Folder {
	return &Folder{client: l.client, url: joinPath(l.url, "rootFolder")}
}

// ContentTypes returns the content types bound to the list.
func (l *List) ContentTypes() *ContentTypes {
	return &ContentTypes{client: l.client, url: joinPath(l.url, "contenttypes")}
}

// RoleAssignments returns the role assignments of the list.
func (l *List) RoleAssignments() *RoleAssignments {
	return &RoleAssignments{client: l.client, url: joinPath(l.url, "roleassignments")}
}

// Library adapts the list to the page library collaborator.
func (l *List) Library() *Library {
	return &Library{list: l}
}

// Items is the SP.ListItemCollection of a list.
type Items struct {
	client *Client
	url    string
}

// URL returns the REST URL of the collection.
func (i *Items) URL() string {
	return i.url
}

// GetByID addresses an item by its integer id.
func (i *Items) GetByID(id int) *Item {
	return &Item{client: i.client, url: fmt.Sprintf("%s(%s)", i.url, strconv.Itoa(id)), id: id}
}

// Library exposes a document library to page creation.
type Library struct {
	list *List
}

var _ contracts.PageLibrary = (*Library)(nil)

// URL returns the REST URL of the underlying list.
func (l *Library) URL() string {
	return l.list.url
}

// FilesByName returns the root folder files named exactly name.
func (l *Library) FilesByName(ctx context.Context, name string) ([]*sharepoint.File, error) {
	return l.list.RootFolder().Files().FilterByName(ctx, name)
}

// RootFolderServerRelativePath returns the decoded server relative path of the library root.
func (l *Library) RootFolderServerRelativePath(ctx context.Context) (string, error) {
	return l.list.RootFolder().ServerRelativePath(ctx)
}

// AddTemplateFile creates a templated file in the library root folder.
func (l *Library) AddTemplateFile(ctx context.Context, serverRelativePath string, kind sharepoint.TemplateFileType) (contracts.PageFile, error) {
	file, err := l.list.RootFolder().Files().AddTemplateFile(ctx, serverRelativePath, kind)
	if err != nil {
		return nil, err
	}
	return file, nil
}
