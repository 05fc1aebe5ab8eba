package spclient

import (
	"context"
	"fmt"

	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
)

const webSelect = "Id,Title,Url,WebTemplate"

// Web is an SP.Web resource.
type Web struct {
	client *Client
	url    string
}

var _ contracts.PageSite = (*Web)(nil)

// URL returns the REST URL of the web.
func (w *Web) URL() string {
	return w.url
}

// Get retrieves basic web metadata.
func (w *Web) Get(ctx context.Context) (*sharepoint.Web, error) {
	data, err := w.client.do(ctx, methodGet, w.url+"?$select="+webSelect, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get web: %w", err)
	}
	web, err := decodeValidated[webJSON](data, "web")
	if err != nil {
		return nil, err
	}
	return web.toDomain(), nil
}

// Lists returns the list collection of the web.
func (w *Web) Lists() *Lists {
	return &Lists{client: w.client, url: joinPath(w.url, "lists")}
}

// GetFileByServerRelativeURL addresses a file by its decoded server relative path.
func (w *Web) GetFileByServerRelativeURL(serverRelativeURL string) *File {
	return &File{
		client:            w.client,
		web:               w,
		url:               joinPath(w.url, fmt.Sprintf("getFileByServerRelativePath(decodedUrl='%s')", literal(serverRelativeURL))),
		serverRelativeURL: serverRelativeURL,
	}
}

// RegionalSettings returns the regional settings of the web.
func (w *Web) RegionalSettings() *RegionalSettings {
	return &RegionalSettings{client: w.client, url: joinPath(w.url, "regionalsettings")}
}

// RoleAssignments returns the role assignments of the web.
func (w *Web) RoleAssignments() *RoleAssignments {
	return &RoleAssignments{client: w.client, url: joinPath(w.url, "roleassignments")}
}

// RoleDefinitions returns the permission levels of the web.
func (w *Web) RoleDefinitions() *RoleDefinitions {
	return &RoleDefinitions{client: w.client, url: joinPath(w.url, "roledefinitions")}
}

// ContentTypes returns the content types of the web.
func (w *Web) ContentTypes() *ContentTypes {
	return &ContentTypes{client: w.client, url: joinPath(w.url, "contenttypes")}
}

// GetClientSideWebParts lists the client side web parts available on the web.
func (w *Web) GetClientSideWebParts(ctx context.Context) ([]sharepoint.ClientSidePageComponent, error) {
	data, err := w.client.do(ctx, methodGet, joinPath(w.url, "GetClientSideWebParts"), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get client side web parts: %w", err)
	}
	parts, err := decodeCollection[sharepoint.ClientSidePageComponent](data)
	if err != nil {
		return nil, fmt.Errorf("decode client side web parts: %w", err)
	}
	return parts, nil
}

// PageLibrary returns the library titled title as a page library.
func (w *Web) PageLibrary(title string) contracts.PageLibrary {
	return w.Lists().GetByTitle(title).Library()
}

// PageFile returns the file at serverRelativeURL as a page file.
func (w *Web) PageFile(serverRelativeURL string) contracts.PageFile {
	return w.GetFileByServerRelativeURL(serverRelativeURL)
}

// RegionalReader returns the web's regional settings as a contracts.RegionalSettingsReader.
func (w *Web) RegionalReader() contracts.RegionalSettingsReader {
	return regionalReader{settings: w.RegionalSettings()}
}

type regionalReader struct {
	settings *RegionalSettings
}

func (r regionalReader) RegionalSettings(ctx context.Context) (*sharepoint.RegionalSettings, error) {
	return r.settings.Get(ctx)
}

func (r regionalReader) TimeZones(ctx context.Context) ([]sharepoint.TimeZone, error) {
	return r.settings.TimeZones().Get(ctx)
}
