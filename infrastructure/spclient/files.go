package spclient

import (
	"context"
	"fmt"

	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
)

const fileSelect = "UniqueId,Name,ServerRelativeUrl,Length,TimeCreated,TimeLastModified"

// Folder is an SP.Folder resource.
type Folder struct {
	client *Client
	url    string
}

// URL returns the REST URL of the folder.
func (f *Folder) URL() string {
	return f.url
}

// Files returns the files directly inside the folder.
func (f *Folder) Files() *Files {
	return &Files{client: f.client, url: joinPath(f.url, "files")}
}

// ServerRelativePath returns the decoded server relative path of the folder.
func (f *Folder) ServerRelativePath(ctx context.Context) (string, error) {
	data, err := f.client.do(ctx, methodGet, f.url+"?$select=ServerRelativePath", nil, nil)
	if err != nil {
		return "", fmt.Errorf("get folder path: %w", err)
	}
	path, err := decodeValidated[serverRelativePathJSON](data, "folder path")
	if err != nil {
		return "", err
	}
	return path.ServerRelativePath.DecodedURL, nil
}

// Files is the SP.FileCollection of a folder.
type Files struct {
	client *Client
	url    string
}

// URL returns the REST URL of the collection.
func (f *Files) URL() string {
	return f.url
}

// FilterByName returns the files whose name equals name exactly.
func (f *Files) FilterByName(ctx context.Context, name string) ([]*sharepoint.File, error) {
	filter := fmt.Sprintf("Name eq '%s'", quoteLiteral(name))
	endpoint := f.url + "?$select=" + fileSelect + "&$filter=" + odataQuery(filter)

	data, err := f.client.do(ctx, methodGet, endpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("filter files by name %q: %w", name, err)
	}
	items, err := decodeValidatedCollection[fileJSON](data, "files")
	if err != nil {
		return nil, err
	}
	out := make([]*sharepoint.File, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// AddTemplateFile creates a blank file of the given template kind at serverRelativePath.
func (f *Files) AddTemplateFile(ctx context.Context, serverRelativePath string, kind sharepoint.TemplateFileType) (*File, error) {
	endpoint := joinPath(f.url, fmt.Sprintf("addTemplateFile(urlOfFile='%s',templateFileType=%d)", literal(serverRelativePath), int(kind)))

	data, err := f.client.do(ctx, methodPost, endpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("add template file: %w", err)
	}
	created, err := decodeValidated[fileJSON](data, "template file")
	if err != nil {
		return nil, err
	}
	return f.client.Web().GetFileByServerRelativeURL(created.ServerRelativeURL), nil
}

// File is an SP.File resource.
type File struct {
	client            *Client
	web               *Web
	url               string
	serverRelativeURL string
}

var _ contracts.PageFile = (*File)(nil)

// URL returns the REST URL of the file.
func (f *File) URL() string {
	return f.url
}

// ServerRelativeURL returns the decoded server relative path the file was addressed with.
func (f *File) ServerRelativeURL() string {
	return f.serverRelativeURL
}

// Get retrieves the file metadata.
func (f *File) Get(ctx context.Context) (*sharepoint.File, error) {
	data, err := f.client.do(ctx, methodGet, f.url+"?$select="+fileSelect, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", f.serverRelativeURL, err)
	}
	file, err := decodeValidated[fileJSON](data, "file")
	if err != nil {
		return nil, err
	}
	return file.toDomain(), nil
}

// GetItem resolves the list item associated with the file.
func (f *File) GetItem(ctx context.Context) (contracts.ListItem, error) {
	item, err := f.Item(ctx)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Item resolves the list item associated with the file.
func (f *File) Item(ctx context.Context) (*Item, error) {
	endpoint := joinPath(f.url, "listItemAllFields") + "?$select=Id,GUID,ParentList/Id&$expand=ParentList"
	data, err := f.client.do(ctx, methodGet, endpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get item of %s: %w", f.serverRelativeURL, err)
	}
	ref, err := decodeValidated[itemRefJSON](data, "file item")
	if err != nil {
		return nil, err
	}
	item := f.web.Lists().GetByID(ref.ParentList.ID).Items().GetByID(ref.ID)
	item.listID = ref.ParentList.ID
	return item, nil
}

// Delete removes the file.
func (f *File) Delete(ctx context.Context) error {
	if _, err := f.client.do(ctx, methodDelete, f.url, nil, nil); err != nil {
		return fmt.Errorf("delete file %s: %w", f.serverRelativeURL, err)
	}
	f.client.logger.SharePoint("File deleted", "path", f.serverRelativeURL)
	return nil
}
