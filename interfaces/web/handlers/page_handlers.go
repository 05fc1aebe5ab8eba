package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sppages/application"
	"sppages/domain/clientside"
	"sppages/domain/contracts"
	"sppages/logging"
)

// PageHandlers handles client side page endpoints.
type PageHandlers struct {
	pageService application.PageService
	logger      *logging.Logger
}

// NewPageHandlers creates a new page handlers instance.
func NewPageHandlers(pageService application.PageService) *PageHandlers {
	return &PageHandlers{
		pageService: pageService,
		logger:      logging.Default().WithComponent("page_handler"),
	}
}

// createPageBody is the body of POST /api/pages. Layout is either a layout
// object or a string holding a YAML document.
type createPageBody struct {
	Library          string                `json:"library"`
	PageName         string                `json:"pageName"`
	Title            string                `json:"title"`
	LayoutType       clientside.LayoutType `json:"layoutType"`
	CommentsDisabled bool                  `json:"commentsDisabled"`
	Layout           json.RawMessage       `json:"layout"`
}

func (b *createPageBody) layoutDocument() ([]byte, error) {
	if len(b.Layout) == 0 || string(b.Layout) == "null" {
		return nil, nil
	}
	if b.Layout[0] == '"' {
		var doc string
		if err := json.Unmarshal(b.Layout, &doc); err != nil {
			return nil, fmt.Errorf("%w: layout: %v", application.ErrInvalidRequest, err)
		}
		return []byte(doc), nil
	}
	return b.Layout, nil
}

// CreatePage creates a page and optionally applies a layout
func (h *PageHandlers) CreatePage(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithContext(r.Context())

	var body createPageBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, logger, err)
		return
	}
	layout, err := body.layoutDocument()
	if err != nil {
		writeError(w, logger, err)
		return
	}

	result, err := h.pageService.CreatePage(r.Context(), &application.CreatePageRequest{
		Library:          body.Library,
		PageName:         body.PageName,
		Title:            body.Title,
		LayoutType:       body.LayoutType,
		Layout:           layout,
		CommentsDisabled: body.CommentsDisabled,
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}

	logger.Info("Page created", "path", result.ServerRelativeURL, "journal_id", result.JournalID)
	writeJSON(w, http.StatusCreated, result)
}

// PreviewLayout renders the canvas markup of the layout document in the body
func (h *PageHandlers) PreviewLayout(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithContext(r.Context())

	doc, err := readBody(w, r)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	markup, err := h.pageService.PreviewLayout(doc)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"canvasContent": markup})
}

// GetPage returns the canvas of the page named by the url query parameter
func (h *PageHandlers) GetPage(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithContext(r.Context())

	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		writeError(w, logger, fmt.Errorf("%w: missing url", application.ErrInvalidRequest))
		return
	}
	details, err := h.pageService.GetPage(r.Context(), pageURL)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// DeletePage deletes the page named by the url query parameter
func (h *PageHandlers) DeletePage(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithContext(r.Context())

	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		writeError(w, logger, fmt.Errorf("%w: missing url", application.ErrInvalidRequest))
		return
	}
	if err := h.pageService.DeletePage(r.Context(), pageURL); err != nil {
		writeError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateProperties merges fields into a page's list item. The If-Match header
// takes precedence over the eTag body field.
func (h *PageHandlers) UpdateProperties(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithContext(r.Context())

	var req application.UpdatePropertiesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, logger, err)
		return
	}
	if ifMatch := r.Header.Get("If-Match"); ifMatch != "" {
		req.ETag = ifMatch
	}

	result, err := h.pageService.UpdatePageProperties(r.Context(), &req)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"listId": result.ListID,
		"itemId": result.ID,
	})
}

// ListJournal returns page creation attempts, optionally filtered by status
func (h *PageHandlers) ListJournal(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithContext(r.Context())

	status := r.URL.Query().Get("status")
	if err := validation.Validate(status, validation.In(
		string(contracts.PageJournalPending),
		string(contracts.PageJournalCreated),
		string(contracts.PageJournalFailed),
		string(contracts.PageJournalDeleted),
	)); err != nil {
		writeError(w, logger, fmt.Errorf("%w: status: %v", application.ErrInvalidRequest, err))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, logger, fmt.Errorf("%w: limit must be a non-negative integer", application.ErrInvalidRequest))
			return
		}
		limit = n
	}

	entries, err := h.pageService.ListJournal(r.Context(), contracts.PageJournalStatus(status), limit)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	if entries == nil {
		entries = []*contracts.PageJournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
