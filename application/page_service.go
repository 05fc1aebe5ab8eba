package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sppages/domain/clientside"
	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
	"sppages/logging"
)

// PageService defines the page operations used by the handler layer.
type PageService interface {
	CreatePage(ctx context.Context, req *CreatePageRequest) (*CreatePageResult, error)
	PreviewLayout(layout []byte) (string, error)
	GetPage(ctx context.Context, serverRelativeURL string) (*PageDetails, error)
	DeletePage(ctx context.Context, serverRelativeURL string) error
	UpdatePageProperties(ctx context.Context, req *UpdatePropertiesRequest) (*sharepoint.ItemUpdateResult, error)
	ListJournal(ctx context.Context, status contracts.PageJournalStatus, limit int) ([]*contracts.PageJournalEntry, error)
}

// CreatePageRequest describes a page to create. Layout is an optional YAML or
// JSON layout document applied and saved after the page exists.
type CreatePageRequest struct {
	Library          string                `json:"library"`
	PageName         string                `json:"pageName"`
	Title            string                `json:"title"`
	LayoutType       clientside.LayoutType `json:"layoutType"`
	Layout           []byte                `json:"-"`
	CommentsDisabled bool                  `json:"commentsDisabled"`
}

// Validate implements validation.Validatable.
func (r *CreatePageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PageName, validation.Required),
		validation.Field(&r.LayoutType),
	)
}

// CreatePageResult is returned for a fully created page.
type CreatePageResult struct {
	JournalID         int64  `json:"journalId"`
	ServerRelativeURL string `json:"serverRelativeUrl"`
	Sections          int    `json:"sections"`
}

// PageDetails is the canvas of a stored page.
type PageDetails struct {
	ServerRelativeURL string           `json:"serverRelativeUrl"`
	Sections          []SectionDetails `json:"sections"`
	CanvasContent     string           `json:"canvasContent"`
}

type SectionDetails struct {
	Order   int             `json:"order"`
	Columns []ColumnDetails `json:"columns"`
}

type ColumnDetails struct {
	Order    int              `json:"order"`
	Factor   int              `json:"factor"`
	Controls []ControlDetails `json:"controls"`
}

// ControlDetails describes one control. Kind is "text" or "webPart".
type ControlDetails struct {
	Kind      string `json:"kind"`
	ID        string `json:"id"`
	Text      string `json:"text,omitempty"`
	WebPartID string `json:"webPartId,omitempty"`
	Title     string `json:"title,omitempty"`
}

// UpdatePropertiesRequest merges Fields into the item of the page at ServerRelativeURL.
type UpdatePropertiesRequest struct {
	ServerRelativeURL string         `json:"serverRelativeUrl"`
	Fields            map[string]any `json:"fields"`
	ETag              string         `json:"eTag"`
}

// Validate implements validation.Validatable.
func (r *UpdatePropertiesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ServerRelativeURL, validation.Required),
		validation.Field(&r.Fields, validation.Required),
	)
}

// PageServiceImpl is the production implementation of PageService.
type PageServiceImpl struct {
	site           contracts.PageSite
	journal        contracts.PageJournalRepository
	defaultLibrary string
	logger         *logging.Logger
}

// NewPageService creates a page service. Pages are created in defaultLibrary
// unless a request names another library.
func NewPageService(site contracts.PageSite, journal contracts.PageJournalRepository, defaultLibrary string) PageService {
	return &PageServiceImpl{
		site:           site,
		journal:        journal,
		defaultLibrary: defaultLibrary,
		logger:         logging.Default().WithComponent("page_service"),
	}
}

// CreatePage creates a page, applies the optional layout and records every
// step in the journal. A failed attempt stays in the journal as failed, with
// the path of the orphaned file when one was created.
func (s *PageServiceImpl) CreatePage(ctx context.Context, req *CreatePageRequest) (*CreatePageResult, error) {
	start := time.Now()
	if req.Library == "" {
		req.Library = s.defaultLibrary
	}
	if req.LayoutType == "" {
		req.LayoutType = clientside.LayoutArticle
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := clientside.ValidatePageName(req.PageName); err != nil {
		return nil, err
	}

	// Parse before anything is written remotely
	var layout *clientside.Layout
	if len(req.Layout) > 0 {
		parsed, err := clientside.ParseLayout(req.Layout)
		if err != nil {
			return nil, err
		}
		layout = parsed
	}

	logger := s.logger.WithContext(ctx)
	journalID, err := s.journal.Begin(ctx, &contracts.PageJournalEntry{
		Library:    req.Library,
		PageName:   req.PageName,
		Title:      req.Title,
		LayoutType: string(req.LayoutType),
	})
	if err != nil {
		return nil, fmt.Errorf("journal page creation: %w", err)
	}

	page, err := clientside.Create(ctx, s.site.PageLibrary(req.Library), req.PageName, req.Title, req.LayoutType)
	if err != nil {
		var partial *clientside.PartialCreateError
		if errors.As(err, &partial) {
			s.journalStep(ctx, "mark_file_created", s.journal.MarkFileCreated(ctx, journalID, partial.ServerRelativeURL))
			logger.Error("Page file orphaned", "journal_id", journalID, "path", partial.ServerRelativeURL, "error", err)
		}
		s.journalStep(ctx, "fail", s.journal.Fail(ctx, journalID, err))
		return nil, err
	}

	pagePath := page.File().ServerRelativeURL()
	s.journalStep(ctx, "mark_file_created", s.journal.MarkFileCreated(ctx, journalID, pagePath))

	if err := s.finishPage(ctx, page, layout, req.CommentsDisabled); err != nil {
		s.journalStep(ctx, "fail", s.journal.Fail(ctx, journalID, err))
		return nil, &clientside.PartialCreateError{ServerRelativeURL: pagePath, Err: err}
	}

	s.journalStep(ctx, "complete", s.journal.Complete(ctx, journalID))
	logger.SharePoint("Page created", "journal_id", journalID, "path", pagePath, "sections", len(page.Sections()))
	logger.Performance("create_page", time.Since(start))

	return &CreatePageResult{
		JournalID:         journalID,
		ServerRelativeURL: pagePath,
		Sections:          len(page.Sections()),
	}, nil
}

func (s *PageServiceImpl) finishPage(ctx context.Context, page *clientside.Page, layout *clientside.Layout, commentsDisabled bool) error {
	if layout != nil {
		if err := layout.Apply(page); err != nil {
			return fmt.Errorf("apply layout: %w", err)
		}
		if err := page.Save(ctx); err != nil {
			return fmt.Errorf("save canvas: %w", err)
		}
	}
	if commentsDisabled {
		if err := page.DisableComments(ctx); err != nil {
			return err
		}
	}
	return nil
}

// journalStep logs a journal write failure. The remote state is already
// changed at that point, so the operation itself still reports its own result.
func (s *PageServiceImpl) journalStep(ctx context.Context, step string, err error) {
	if err != nil {
		s.logger.WithContext(ctx).Warn("Failed to update page journal", "step", step, "error", err)
	}
}

// PreviewLayout renders the canvas markup a layout document produces without
// touching the remote site.
func (s *PageServiceImpl) PreviewLayout(layout []byte) (string, error) {
	parsed, err := clientside.ParseLayout(layout)
	if err != nil {
		return "", err
	}
	page := clientside.NewPage(nil)
	if err := parsed.Apply(page); err != nil {
		return "", err
	}
	return page.ToHTML(), nil
}

// GetPage loads the page at serverRelativeURL and describes its canvas.
func (s *PageServiceImpl) GetPage(ctx context.Context, serverRelativeURL string) (*PageDetails, error) {
	if err := validation.Validate(serverRelativeURL, validation.Required); err != nil {
		return nil, fmt.Errorf("%w: url %v", ErrInvalidRequest, err)
	}
	page, err := clientside.Load(ctx, s.site.PageFile(serverRelativeURL))
	if err != nil {
		return nil, err
	}
	return describePage(serverRelativeURL, page), nil
}

func describePage(serverRelativeURL string, page *clientside.Page) *PageDetails {
	details := &PageDetails{
		ServerRelativeURL: serverRelativeURL,
		Sections:          make([]SectionDetails, 0, len(page.Sections())),
		CanvasContent:     page.ToHTML(),
	}
	for _, section := range page.Sections() {
		sd := SectionDetails{Order: section.Order(), Columns: make([]ColumnDetails, 0)}
		for _, column := range section.Columns() {
			cd := ColumnDetails{Order: column.Order(), Factor: int(column.Factor()), Controls: make([]ControlDetails, 0)}
			for _, control := range column.Controls() {
				switch c := control.(type) {
				case *clientside.TextControl:
					cd.Controls = append(cd.Controls, ControlDetails{Kind: "text", ID: c.ID(), Text: c.Text()})
				case *clientside.WebPartControl:
					cd.Controls = append(cd.Controls, ControlDetails{Kind: "webPart", ID: c.ID(), WebPartID: c.WebPartID(), Title: c.Title()})
				}
			}
			sd.Columns = append(sd.Columns, cd)
		}
		details.Sections = append(details.Sections, sd)
	}
	return details
}

// DeletePage deletes the page file and marks its journal entries deleted.
func (s *PageServiceImpl) DeletePage(ctx context.Context, serverRelativeURL string) error {
	if err := validation.Validate(serverRelativeURL, validation.Required); err != nil {
		return fmt.Errorf("%w: url %v", ErrInvalidRequest, err)
	}
	page := clientside.NewPage(s.site.PageFile(serverRelativeURL))
	if err := page.Delete(ctx); err != nil {
		return err
	}
	s.journalStep(ctx, "mark_deleted", s.journal.MarkDeleted(ctx, serverRelativeURL))
	s.logger.WithContext(ctx).SharePoint("Page deleted", "path", serverRelativeURL)
	return nil
}

// UpdatePageProperties merges fields into the page's list item, guarded by the request eTag.
func (s *PageServiceImpl) UpdatePageProperties(ctx context.Context, req *UpdatePropertiesRequest) (*sharepoint.ItemUpdateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	page := clientside.NewPage(s.site.PageFile(req.ServerRelativeURL))
	result, err := page.UpdateProperties(ctx, req.Fields, req.ETag)
	if err != nil {
		return nil, err
	}
	s.logger.WithContext(ctx).SharePoint("Page properties updated", "path", req.ServerRelativeURL, "fields", len(req.Fields))
	return result, nil
}

// ListJournal returns journal entries, newest first.
func (s *PageServiceImpl) ListJournal(ctx context.Context, status contracts.PageJournalStatus, limit int) ([]*contracts.PageJournalEntry, error) {
	entries, err := s.journal.List(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list page journal: %w", err)
	}
	return entries, nil
}
