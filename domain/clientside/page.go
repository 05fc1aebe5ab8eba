package clientside

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/mapstructure"

	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
	"sppages/logging"
)

// LayoutType is the page layout of a client side page.
type LayoutType string

const (
	LayoutArticle LayoutType = "Article"
	LayoutHome    LayoutType = "Home"
)

// Validate implements validation.Validatable.
func (l LayoutType) Validate() error {
	if err := validation.Validate(string(l), validation.In(string(LayoutArticle), string(LayoutHome))); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLayoutType, string(l))
	}
	return nil
}

// Values stamped on the list item of every new page.
const (
	ClientSidePageContentTypeID = "0x0101009D1CB255DA76424F860D91F20E6C4118"
	ClientSideApplicationID     = "b6917cb1-93a0-4b97-a84d-7cf49975d4ec"
	DefaultBannerImageURL       = "/_layouts/15/images/sitepagethumbnail.png"
)

// Item field names used by pages.
const (
	FieldContentTypeID           = "ContentTypeId"
	FieldTitle                   = "Title"
	FieldClientSideApplicationID = "ClientSideApplicationId"
	FieldPageLayoutType          = "PageLayoutType"
	FieldPromotedState           = "PromotedState"
	FieldBannerImageURL          = "BannerImageUrl"
	FieldCanvasContent           = "CanvasContent1"
)

// AnyETag makes an item update unconditional.
const AnyETag = "*"

// Page is a client side page: a remote file plus the in-memory canvas tree.
// A Page is not safe for concurrent structural edits.
type Page struct {
	file     contracts.PageFile
	sections []*Section
	logger   *logging.Logger
}

// NewPage wraps file with an empty canvas. file may be nil for local rendering.
func NewPage(file contracts.PageFile) *Page {
	return &Page{
		file:     file,
		sections: make([]*Section, 0),
		logger:   logging.Default().WithComponent("clientside_page"),
	}
}

// Create adds a blank client side page named pageName to library and stamps
// the page metadata on its list item. layout defaults to Article.
//
// The sequence is not transactional: when a step after the file creation fails,
// the returned error is a *PartialCreateError naming the orphaned file.
func Create(ctx context.Context, library contracts.PageLibrary, pageName, title string, layout LayoutType) (*Page, error) {
	if layout == "" {
		layout = LayoutArticle
	}
	if err := ValidatePageName(pageName); err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	logger := logging.Default().WithComponent("clientside_page")

	existing, err := library.FilesByName(ctx, pageName)
	if err != nil {
		return nil, fmt.Errorf("check existing files: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: '%s' in library '%s'", ErrDuplicateName, pageName, library.URL())
	}

	root, err := library.RootFolderServerRelativePath(ctx)
	if err != nil {
		return nil, fmt.Errorf("get root folder path: %w", err)
	}
	pagePath := path.Join("/", root, pageName)

	file, err := library.AddTemplateFile(ctx, pagePath, sharepoint.TemplateFileTypeClientSidePage)
	if err != nil {
		return nil, fmt.Errorf("add template file %s: %w", pagePath, err)
	}
	logger.SharePoint("Page file created", "path", pagePath)

	item, err := file.GetItem(ctx)
	if err != nil {
		return nil, &PartialCreateError{ServerRelativeURL: pagePath, Err: fmt.Errorf("get page item: %w", err)}
	}

	if _, err := item.Update(ctx, newPageFields(title, layout), AnyETag); err != nil {
		return nil, &PartialCreateError{ServerRelativeURL: pagePath, Err: fmt.Errorf("stamp page fields: %w", err)}
	}

	logger.SharePoint("Page initialized", "path", pagePath, "title", title, "layout", string(layout))
	return NewPage(file), nil
}

// ValidatePageName accepts a bare file name. Separators and dot segments would
// place the file outside the library root, where the duplicate check cannot see it.
func ValidatePageName(name string) error {
	err := validation.Validate(name,
		validation.Required,
		validation.By(func(value interface{}) error {
			n := value.(string)
			if strings.ContainsAny(n, `/\`) {
				return errors.New("must not contain path separators")
			}
			if n == "." || n == ".." {
				return errors.New("must not be a dot segment")
			}
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPageName, name, err)
	}
	return nil
}

func newPageFields(title string, layout LayoutType) map[string]any {
	return map[string]any{
		FieldContentTypeID:           ClientSidePageContentTypeID,
		FieldTitle:                   title,
		FieldClientSideApplicationID: ClientSideApplicationID,
		FieldPageLayoutType:          string(layout),
		FieldPromotedState:           int(sharepoint.PromotedStateNotPromoted),
		FieldBannerImageURL: map[string]any{
			"Url": DefaultBannerImageURL,
		},
		FieldCanvasContent: "",
	}
}

// pageItemFields is the subset of item fields read when loading a page.
type pageItemFields struct {
	ContentTypeID  string `mapstructure:"ContentTypeId"`
	Title          string `mapstructure:"Title"`
	PageLayoutType string `mapstructure:"PageLayoutType"`
	PromotedState  int    `mapstructure:"PromotedState"`
	CanvasContent  string `mapstructure:"CanvasContent1"`
}

// Load reads the canvas stored on file's list item and rebuilds the section tree.
func Load(ctx context.Context, file contracts.PageFile) (*Page, error) {
	item, err := file.GetItem(ctx)
	if err != nil {
		return nil, fmt.Errorf("get page item: %w", err)
	}
	raw, err := item.Fields(ctx)
	if err != nil {
		return nil, fmt.Errorf("get page fields: %w", err)
	}

	var fields pageItemFields
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &fields,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: page fields: %v", sharepoint.ErrMalformedResponse, err)
	}
	if err := validation.ValidateStruct(&fields,
		validation.Field(&fields.ContentTypeID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", sharepoint.ErrMalformedResponse, err)
	}
	if !strings.HasPrefix(strings.ToUpper(fields.ContentTypeID), strings.ToUpper(ClientSidePageContentTypeID)) {
		return nil, fmt.Errorf("%w: %s has content type %s", ErrNotClientSidePage, file.ServerRelativeURL(), fields.ContentTypeID)
	}

	page := NewPage(file)
	if fields.CanvasContent == "" {
		return page, nil
	}
	sections, err := ParseCanvas(fields.CanvasContent)
	if err != nil {
		return nil, fmt.Errorf("parse canvas of %s: %w", file.ServerRelativeURL(), err)
	}
	for _, s := range sections {
		s.page = page
		page.sections = append(page.sections, s)
	}
	return page, nil
}

// File returns the backing file, or nil for a local page.
func (p *Page) File() contracts.PageFile {
	return p.file
}

// Sections returns the sections in insertion order.
func (p *Page) Sections() []*Section {
	out := make([]*Section, len(p.sections))
	copy(out, p.sections)
	return out
}

// AddSection appends a section ordered after every existing section.
func (p *Page) AddSection() *Section {
	section := newSection(p, nextOrder(len(p.sections), func(i int) int { return p.sections[i].order }))
	p.sections = append(p.sections, section)
	return section
}

// RemoveSection drops section from the page. Remaining orders are not renumbered.
func (p *Page) RemoveSection(section *Section) bool {
	for i, existing := range p.sections {
		if existing == section {
			p.sections = append(p.sections[:i], p.sections[i+1:]...)
			return true
		}
	}
	return false
}

// ToHTML renders the canvas content stored in CanvasContent1.
func (p *Page) ToHTML() string {
	var b strings.Builder
	b.WriteString("<div>")
	for _, section := range p.sections {
		b.WriteString(section.ToHTML())
	}
	b.WriteString("</div>")
	return b.String()
}

// UpdateProperties merges fields into the page's list item.
// An empty eTag is sent as "*" (last writer wins).
func (p *Page) UpdateProperties(ctx context.Context, fields map[string]any, eTag string) (*sharepoint.ItemUpdateResult, error) {
	if p.file == nil {
		return nil, ErrNoFile
	}
	if eTag == "" {
		eTag = AnyETag
	}
	item, err := p.file.GetItem(ctx)
	if err != nil {
		return nil, fmt.Errorf("get page item: %w", err)
	}
	result, err := item.Update(ctx, fields, eTag)
	if err != nil {
		if errors.Is(err, sharepoint.ErrETagMismatch) {
			p.logger.Warn("Page item changed since eTag was read", "path", p.file.ServerRelativeURL(), "etag", eTag)
		}
		return nil, fmt.Errorf("update page item: %w", err)
	}
	return result, nil
}

// Save writes the rendered canvas to the page's list item.
func (p *Page) Save(ctx context.Context) error {
	html := p.ToHTML()
	p.logger.Canvas("Saving canvas", "sections", len(p.sections), "bytes", len(html))
	_, err := p.UpdateProperties(ctx, map[string]any{FieldCanvasContent: html}, AnyETag)
	return err
}

// EnableComments turns page comments on.
func (p *Page) EnableComments(ctx context.Context) error {
	return p.setCommentsDisabled(ctx, false)
}

// DisableComments turns page comments off.
func (p *Page) DisableComments(ctx context.Context) error {
	return p.setCommentsDisabled(ctx, true)
}

func (p *Page) setCommentsDisabled(ctx context.Context, disabled bool) error {
	if p.file == nil {
		return ErrNoFile
	}
	item, err := p.file.GetItem(ctx)
	if err != nil {
		return fmt.Errorf("get page item: %w", err)
	}
	if err := item.SetCommentsDisabled(ctx, disabled); err != nil {
		return fmt.Errorf("set comments disabled=%t: %w", disabled, err)
	}
	return nil
}

// Delete removes the backing file.
func (p *Page) Delete(ctx context.Context) error {
	if p.file == nil {
		return ErrNoFile
	}
	if err := p.file.Delete(ctx); err != nil {
		return fmt.Errorf("delete page %s: %w", p.file.ServerRelativeURL(), err)
	}
	return nil
}
