package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sppages/application"
	"sppages/domain/clientside"
	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
)

// Mock implementations for testing
type MockPageService struct {
	mock.Mock
}

func (m *MockPageService) CreatePage(ctx context.Context, req *application.CreatePageRequest) (*application.CreatePageResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.CreatePageResult), args.Error(1)
}

func (m *MockPageService) PreviewLayout(layout []byte) (string, error) {
	args := m.Called(layout)
	return args.String(0), args.Error(1)
}

func (m *MockPageService) GetPage(ctx context.Context, serverRelativeURL string) (*application.PageDetails, error) {
	args := m.Called(ctx, serverRelativeURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.PageDetails), args.Error(1)
}

func (m *MockPageService) DeletePage(ctx context.Context, serverRelativeURL string) error {
	args := m.Called(ctx, serverRelativeURL)
	return args.Error(0)
}

func (m *MockPageService) UpdatePageProperties(ctx context.Context, req *application.UpdatePropertiesRequest) (*sharepoint.ItemUpdateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharepoint.ItemUpdateResult), args.Error(1)
}

func (m *MockPageService) ListJournal(ctx context.Context, status contracts.PageJournalStatus, limit int) ([]*contracts.PageJournalEntry, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contracts.PageJournalEntry), args.Error(1)
}

func newTestRouter(pages application.PageService, site application.SiteService) *chi.Mux {
	r := chi.NewRouter()
	RegisterAPIRoutes(r, NewPageHandlers(pages), NewSiteHandlers(site))
	return r
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPageHandlers_CreatePage(t *testing.T) {
	pages := new(MockPageService)
	router := newTestRouter(pages, new(MockSiteService))

	pages.On("CreatePage", mock.Anything, mock.MatchedBy(func(req *application.CreatePageRequest) bool {
		return req.PageName == "news.aspx" && req.LayoutType == clientside.LayoutHome && req.Layout == nil
	})).Return(&application.CreatePageResult{JournalID: 5, ServerRelativeURL: "/SitePages/news.aspx"}, nil)

	w := serve(router, http.MethodPost, "/api/pages", `{"pageName":"news.aspx","title":"News","layoutType":"Home"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got application.CreatePageResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(5), got.JournalID)
	assert.Equal(t, "/SitePages/news.aspx", got.ServerRelativeURL)
	pages.AssertExpectations(t)
}

func TestPageHandlers_CreatePage_LayoutForms(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "object",
			body: `{"pageName":"a.aspx","layout":{"sections":[{"columns":[{"factor":12}]}]}}`,
			want: `{"sections":[{"columns":[{"factor":12}]}]}`,
		},
		{
			name: "yaml_string",
			body: `{"pageName":"a.aspx","layout":"sections:\n  - columns:\n      - factor: 12\n"}`,
			want: "sections:\n  - columns:\n      - factor: 12\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := new(MockPageService)
			router := newTestRouter(pages, new(MockSiteService))
			pages.On("CreatePage", mock.Anything, mock.MatchedBy(func(req *application.CreatePageRequest) bool {
				return string(req.Layout) == tt.want
			})).Return(&application.CreatePageResult{}, nil)

			w := serve(router, http.MethodPost, "/api/pages", tt.body)

			assert.Equal(t, http.StatusCreated, w.Code)
			pages.AssertExpectations(t)
		})
	}
}

func TestPageHandlers_CreatePage_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "duplicate", err: fmt.Errorf("%w: 'a.aspx'", clientside.ErrDuplicateName), status: http.StatusConflict},
		{name: "invalid_layout", err: fmt.Errorf("%w: bad", clientside.ErrInvalidLayout), status: http.StatusBadRequest},
		{name: "invalid_page_name", err: fmt.Errorf("%w: \"a/b.aspx\"", clientside.ErrInvalidPageName), status: http.StatusBadRequest},
		{name: "invalid_request", err: application.ErrInvalidRequest, status: http.StatusBadRequest},
		{name: "access_denied", err: fmt.Errorf("check existing files: %w", sharepoint.ErrAccessDenied), status: http.StatusForbidden},
		{name: "not_found", err: sharepoint.ErrNotFound, status: http.StatusNotFound},
		{name: "remote", err: sharepoint.ErrRemote, status: http.StatusBadGateway},
		{name: "timeout", err: context.DeadlineExceeded, status: http.StatusGatewayTimeout},
		{name: "unknown", err: fmt.Errorf("boom"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := new(MockPageService)
			router := newTestRouter(pages, new(MockSiteService))
			pages.On("CreatePage", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(router, http.MethodPost, "/api/pages", `{"pageName":"a.aspx"}`)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestPageHandlers_CreatePage_PartialCreateReportsPath(t *testing.T) {
	pages := new(MockPageService)
	router := newTestRouter(pages, new(MockSiteService))
	pages.On("CreatePage", mock.Anything, mock.Anything).Return(nil, &clientside.PartialCreateError{
		ServerRelativeURL: "/SitePages/half.aspx",
		Err:               sharepoint.ErrAccessDenied,
	})

	w := serve(router, http.MethodPost, "/api/pages", `{"pageName":"half.aspx"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/SitePages/half.aspx", body.ServerRelativeURL)
}

func TestPageHandlers_CreatePage_BadBody(t *testing.T) {
	pages := new(MockPageService)
	router := newTestRouter(pages, new(MockSiteService))

	for _, body := range []string{`not json`, `{"pageName":"a.aspx","unexpected":1}`, `{"pageName":"a.aspx","layout":"\u0000`} {
		w := serve(router, http.MethodPost, "/api/pages", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	pages.AssertNotCalled(t, "CreatePage", mock.Anything, mock.Anything)
}

func TestPageHandlers_PreviewLayout(t *testing.T) {
	pages := new(MockPageService)
	router := newTestRouter(pages, new(MockSiteService))
	doc := "sections:\n  - columns:\n      - {}\n"
	pages.On("PreviewLayout", []byte(doc)).Return("<div></div>", nil)

	w := serve(router, http.MethodPost, "/api/pages/preview", doc)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"canvasContent":"<div></div>"}`, w.Body.String())
}

func TestPageHandlers_DeletePage(t *testing.T) {
	pages := new(MockPageService)
	router := newTestRouter(pages, new(MockSiteService))
	pages.On("DeletePage", mock.Anything, "/SitePages/old page.aspx").Return(nil)
	pages.On("DeletePage", mock.Anything, "/SitePages/gone.aspx").Return(sharepoint.ErrNotFound)

	w := serve(router, http.MethodDelete, "/api/pages?url=%2FSitePages%2Fold%20page.aspx", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(router, http.MethodDelete, "/api/pages?url=/SitePages/gone.aspx", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, http.MethodDelete, "/api/pages", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPageHandlers_UpdateProperties(t *testing.T) {
	pages := new(MockPageService)
	router := newTestRouter(pages, new(MockSiteService))

	pages.On("UpdatePageProperties", mock.Anything, mock.MatchedBy(func(req *application.UpdatePropertiesRequest) bool {
		return req.ETag == `"4"` && req.Fields["Title"] == "New"
	})).Return(nil, sharepoint.ErrETagMismatch).Once()
	pages.On("UpdatePageProperties", mock.Anything, mock.MatchedBy(func(req *application.UpdatePropertiesRequest) bool {
		return req.ETag == ""
	})).Return(&sharepoint.ItemUpdateResult{ListID: "list-1", ID: 3}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/api/pages/properties",
		strings.NewReader(`{"serverRelativeUrl":"/SitePages/a.aspx","fields":{"Title":"New"},"eTag":"\"1\""}`))
	req.Header.Set("If-Match", `"4"`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	w = serve(router, http.MethodPatch, "/api/pages/properties", `{"serverRelativeUrl":"/SitePages/a.aspx","fields":{"Title":"New"}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"listId":"list-1","itemId":3}`, w.Body.String())
	pages.AssertExpectations(t)
}

func TestPageHandlers_ListJournal(t *testing.T) {
	pages := new(MockPageService)
	router := newTestRouter(pages, new(MockSiteService))
	entries := []*contracts.PageJournalEntry{{ID: 2, PageName: "b.aspx", Status: contracts.PageJournalFailed, ServerRelativeURL: "/SitePages/b.aspx"}}

	pages.On("ListJournal", mock.Anything, contracts.PageJournalFailed, 10).Return(entries, nil)
	pages.On("ListJournal", mock.Anything, contracts.PageJournalStatus(""), 0).Return(nil, nil)

	w := serve(router, http.MethodGet, "/api/pages/journal?status=failed&limit=10", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "failed", got[0]["status"])
	assert.Equal(t, "/SitePages/b.aspx", got[0]["serverRelativeUrl"])

	w = serve(router, http.MethodGet, "/api/pages/journal", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = serve(router, http.MethodGet, "/api/pages/journal?status=archived", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(router, http.MethodGet, "/api/pages/journal?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPageHandlers_GetPage(t *testing.T) {
	pages := new(MockPageService)
	router := newTestRouter(pages, new(MockSiteService))

	pages.On("GetPage", mock.Anything, "/SitePages/home.aspx").Return(&application.PageDetails{
		ServerRelativeURL: "/SitePages/home.aspx",
		Sections: []application.SectionDetails{{
			Columns: []application.ColumnDetails{{Factor: 12, Controls: []application.ControlDetails{{Kind: "text", ID: "c1", Text: "<p>Hi</p>"}}}},
		}},
		CanvasContent: "<div></div>",
	}, nil)
	pages.On("GetPage", mock.Anything, "/SitePages/doc.aspx").Return(nil, fmt.Errorf("load: %w", clientside.ErrNotClientSidePage))

	w := serve(router, http.MethodGet, "/api/pages?url=/SitePages/home.aspx", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got application.PageDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Sections, 1)
	assert.Equal(t, "text", got.Sections[0].Columns[0].Controls[0].Kind)

	w = serve(router, http.MethodGet, "/api/pages?url=/SitePages/doc.aspx", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = serve(router, http.MethodGet, "/api/pages", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	pages.AssertNumberOfCalls(t, "GetPage", 2)
}
