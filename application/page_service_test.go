package application

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sppages/domain/clientside"
	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
	"sppages/test/helpers"
)

func newPageServiceWithMocks() (PageService, *helpers.PageMocks) {
	m := helpers.NewPageMocks()
	return NewPageService(m.Site, m.Journal, "Site Pages"), m
}

func TestPageService_CreatePage_Success(t *testing.T) {
	service, m := newPageServiceWithMocks()
	ctx := helpers.TestContext()

	m.ExpectSuccessfulCreate("/sites/dev/SitePages", "news.aspx")
	m.ExpectJournalBegin(7)
	m.Journal.On("MarkFileCreated", mock.Anything, int64(7), "/sites/dev/SitePages/news.aspx").Return(nil)
	m.Journal.On("Complete", mock.Anything, int64(7)).Return(nil)

	result, err := service.CreatePage(ctx, &CreatePageRequest{PageName: "news.aspx", Title: "News"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), result.JournalID)
	assert.Equal(t, "/sites/dev/SitePages/news.aspx", result.ServerRelativeURL)
	assert.Zero(t, result.Sections)

	m.Site.AssertCalled(t, "PageLibrary", "Site Pages")
	m.Journal.AssertCalled(t, "Begin", mock.Anything, mock.MatchedBy(func(e *contracts.PageJournalEntry) bool {
		return e.Library == "Site Pages" && e.PageName == "news.aspx" && e.LayoutType == "Article"
	}))
	m.Item.AssertNumberOfCalls(t, "Update", 1)
	m.AssertAllExpectations(t)
}

func TestPageService_CreatePage_WithLayoutSavesCanvas(t *testing.T) {
	service, m := newPageServiceWithMocks()
	ctx := helpers.TestContext()

	m.ExpectSuccessfulCreate("/SitePages", "team.aspx")
	m.ExpectJournalBegin(1)
	m.Journal.On("MarkFileCreated", mock.Anything, int64(1), "/SitePages/team.aspx").Return(nil)
	m.Journal.On("Complete", mock.Anything, int64(1)).Return(nil)
	m.Item.On("SetCommentsDisabled", mock.Anything, true).Return(nil)

	result, err := service.CreatePage(ctx, &CreatePageRequest{
		Library:          "Team Pages",
		PageName:         "team.aspx",
		LayoutType:       clientside.LayoutHome,
		Layout:           []byte(helpers.TwoColumnLayout),
		CommentsDisabled: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Sections)
	m.Site.AssertCalled(t, "PageLibrary", "Team Pages")

	require.Len(t, m.Item.Calls, 3)
	saved := m.Item.Calls[1].Arguments.Get(1).(map[string]any)
	canvas := saved[clientside.FieldCanvasContent].(string)
	assert.True(t, strings.HasPrefix(canvas, "<div><div data-sp-canvascontrol"))
	assert.Contains(t, canvas, "<p>Left</p>")
	assert.Contains(t, canvas, "<p>Right</p>")
	m.Item.AssertCalled(t, "SetCommentsDisabled", mock.Anything, true)
}

func TestPageService_CreatePage_InvalidLayoutWritesNothing(t *testing.T) {
	service, m := newPageServiceWithMocks()

	_, err := service.CreatePage(helpers.TestContext(), &CreatePageRequest{
		PageName: "bad.aspx",
		Layout:   []byte("sections:\n  - columns:\n      - factor: 5\n"),
	})

	assert.ErrorIs(t, err, clientside.ErrInvalidLayout)
	m.Journal.AssertNotCalled(t, "Begin", mock.Anything, mock.Anything)
	m.Library.AssertNotCalled(t, "FilesByName", mock.Anything, mock.Anything)
}

func TestPageService_CreatePage_InvalidRequest(t *testing.T) {
	service, m := newPageServiceWithMocks()

	_, err := service.CreatePage(helpers.TestContext(), &CreatePageRequest{PageName: ""})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = service.CreatePage(helpers.TestContext(), &CreatePageRequest{PageName: "x.aspx", LayoutType: "Wiki"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	m.Journal.AssertNotCalled(t, "Begin", mock.Anything, mock.Anything)
}

func TestPageService_CreatePage_PathLikeNameWritesNothing(t *testing.T) {
	service, m := newPageServiceWithMocks()

	_, err := service.CreatePage(helpers.TestContext(), &CreatePageRequest{PageName: "../../Shared Documents/x.aspx"})

	require.ErrorIs(t, err, clientside.ErrInvalidPageName)
	m.Journal.AssertNotCalled(t, "Begin", mock.Anything, mock.Anything)
	m.Library.AssertNotCalled(t, "AddTemplateFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestPageService_CreatePage_DuplicateIsJournaledAsFailed(t *testing.T) {
	service, m := newPageServiceWithMocks()

	m.ExpectJournalBegin(3)
	m.Library.On("FilesByName", mock.Anything, "dup.aspx").Return([]*sharepoint.File{{Name: "dup.aspx"}}, nil)
	m.Journal.On("Fail", mock.Anything, int64(3), mock.MatchedBy(func(err error) bool {
		return errors.Is(err, clientside.ErrDuplicateName)
	})).Return(nil)

	_, err := service.CreatePage(helpers.TestContext(), &CreatePageRequest{PageName: "dup.aspx"})

	assert.ErrorIs(t, err, clientside.ErrDuplicateName)
	m.Journal.AssertNotCalled(t, "MarkFileCreated", mock.Anything, mock.Anything, mock.Anything)
	m.AssertAllExpectations(t)
}

func TestPageService_CreatePage_PartialCreateRecordsOrphan(t *testing.T) {
	service, m := newPageServiceWithMocks()
	ctx := helpers.TestContext()

	m.ExpectJournalBegin(9)
	m.Library.On("FilesByName", mock.Anything, "half.aspx").Return([]*sharepoint.File{}, nil)
	m.Library.On("RootFolderServerRelativePath", mock.Anything).Return("/SitePages", nil)
	m.Library.On("AddTemplateFile", mock.Anything, "/SitePages/half.aspx", sharepoint.TemplateFileTypeClientSidePage).Return(m.File, nil)
	m.File.On("GetItem", mock.Anything).Return(m.Item, nil)
	m.Item.On("Update", mock.Anything, mock.Anything, "*").Return(nil, sharepoint.ErrAccessDenied)
	m.Journal.On("MarkFileCreated", mock.Anything, int64(9), "/SitePages/half.aspx").Return(nil)
	m.Journal.On("Fail", mock.Anything, int64(9), mock.Anything).Return(nil)

	_, err := service.CreatePage(ctx, &CreatePageRequest{PageName: "half.aspx"})

	var partial *clientside.PartialCreateError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "/SitePages/half.aspx", partial.ServerRelativeURL)
	assert.ErrorIs(t, err, sharepoint.ErrAccessDenied)
	m.Journal.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	m.AssertAllExpectations(t)
}

func TestPageService_CreatePage_SaveFailureIsPartial(t *testing.T) {
	service, m := newPageServiceWithMocks()
	ctx := helpers.TestContext()

	m.ExpectJournalBegin(4)
	m.Library.On("FilesByName", mock.Anything, "p.aspx").Return([]*sharepoint.File{}, nil)
	m.Library.On("RootFolderServerRelativePath", mock.Anything).Return("/SitePages", nil)
	m.Library.On("AddTemplateFile", mock.Anything, "/SitePages/p.aspx", sharepoint.TemplateFileTypeClientSidePage).Return(m.File, nil)
	m.File.On("ServerRelativeURL").Return("/SitePages/p.aspx")
	m.File.On("GetItem", mock.Anything).Return(m.Item, nil)
	m.Item.On("Update", mock.Anything, mock.Anything, "*").Return(&sharepoint.ItemUpdateResult{}, nil).Once()
	m.Item.On("Update", mock.Anything, mock.Anything, "*").Return(nil, sharepoint.ErrRemote).Once()
	m.Journal.On("MarkFileCreated", mock.Anything, int64(4), "/SitePages/p.aspx").Return(nil)
	m.Journal.On("Fail", mock.Anything, int64(4), mock.Anything).Return(nil)

	_, err := service.CreatePage(ctx, &CreatePageRequest{PageName: "p.aspx", Layout: []byte(helpers.TwoColumnLayout)})

	var partial *clientside.PartialCreateError
	require.ErrorAs(t, err, &partial)
	assert.ErrorIs(t, err, sharepoint.ErrRemote)
	m.AssertAllExpectations(t)
}

func TestPageService_CreatePage_JournalWriteFailureDoesNotFailCreate(t *testing.T) {
	service, m := newPageServiceWithMocks()

	m.ExpectSuccessfulCreate("/SitePages", "ok.aspx")
	m.ExpectJournalBegin(2)
	m.Journal.On("MarkFileCreated", mock.Anything, int64(2), "/SitePages/ok.aspx").Return(errors.New("database is locked"))
	m.Journal.On("Complete", mock.Anything, int64(2)).Return(errors.New("database is locked"))

	result, err := service.CreatePage(helpers.TestContext(), &CreatePageRequest{PageName: "ok.aspx"})

	require.NoError(t, err)
	assert.Equal(t, "/SitePages/ok.aspx", result.ServerRelativeURL)
}

func TestPageService_CreatePage_JournalBeginFailure(t *testing.T) {
	service, m := newPageServiceWithMocks()
	m.Journal.On("Begin", mock.Anything, mock.Anything).Return(int64(0), errors.New("disk full"))

	_, err := service.CreatePage(helpers.TestContext(), &CreatePageRequest{PageName: "x.aspx"})

	assert.ErrorContains(t, err, "disk full")
	m.Library.AssertNotCalled(t, "FilesByName", mock.Anything, mock.Anything)
}

func TestPageService_PreviewLayout(t *testing.T) {
	service, _ := newPageServiceWithMocks()

	html, err := service.PreviewLayout([]byte(helpers.TwoColumnLayout))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(html, "<div>"))
	assert.True(t, strings.HasSuffix(html, "</div>"))

	sections, err := clientside.ParseCanvas(html)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Len(t, sections[0].Columns(), 2)

	_, err = service.PreviewLayout([]byte("nope: true"))
	assert.ErrorIs(t, err, clientside.ErrInvalidLayout)
}

func TestPageService_DeletePage(t *testing.T) {
	service, m := newPageServiceWithMocks()
	ctx := helpers.TestContext()

	m.Site.On("PageFile", "/SitePages/old.aspx").Return(m.File)
	m.File.On("Delete", mock.Anything).Return(nil)
	m.File.On("ServerRelativeURL").Return("/SitePages/old.aspx").Maybe()
	m.Journal.On("MarkDeleted", mock.Anything, "/SitePages/old.aspx").Return(nil)

	require.NoError(t, service.DeletePage(ctx, "/SitePages/old.aspx"))
	m.AssertAllExpectations(t)

	assert.ErrorIs(t, service.DeletePage(ctx, ""), ErrInvalidRequest)
}

func TestPageService_DeletePage_NotFoundLeavesJournal(t *testing.T) {
	service, m := newPageServiceWithMocks()

	m.Site.On("PageFile", "/SitePages/gone.aspx").Return(m.File)
	m.File.On("Delete", mock.Anything).Return(sharepoint.ErrNotFound)
	m.File.On("ServerRelativeURL").Return("/SitePages/gone.aspx")

	err := service.DeletePage(helpers.TestContext(), "/SitePages/gone.aspx")

	assert.ErrorIs(t, err, sharepoint.ErrNotFound)
	m.Journal.AssertNotCalled(t, "MarkDeleted", mock.Anything, mock.Anything)
}

func TestPageService_UpdatePageProperties(t *testing.T) {
	service, m := newPageServiceWithMocks()
	ctx := helpers.TestContext()
	fields := map[string]any{"Title": "Renamed"}

	m.Site.On("PageFile", "/SitePages/a.aspx").Return(m.File)
	m.File.On("GetItem", mock.Anything).Return(m.Item, nil)
	m.File.On("ServerRelativeURL").Return("/SitePages/a.aspx").Maybe()
	m.Item.On("Update", mock.Anything, fields, "\"3\"").Return(nil, sharepoint.ErrETagMismatch).Once()
	m.Item.On("Update", mock.Anything, fields, "*").Return(&sharepoint.ItemUpdateResult{ID: 12}, nil).Once()

	_, err := service.UpdatePageProperties(ctx, &UpdatePropertiesRequest{ServerRelativeURL: "/SitePages/a.aspx", Fields: fields, ETag: "\"3\""})
	assert.ErrorIs(t, err, sharepoint.ErrETagMismatch)

	result, err := service.UpdatePageProperties(ctx, &UpdatePropertiesRequest{ServerRelativeURL: "/SitePages/a.aspx", Fields: fields})
	require.NoError(t, err)
	assert.Equal(t, 12, result.ID)

	_, err = service.UpdatePageProperties(ctx, &UpdatePropertiesRequest{ServerRelativeURL: "/SitePages/a.aspx"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestPageService_ListJournal(t *testing.T) {
	service, m := newPageServiceWithMocks()
	td := helpers.NewTestData()
	entries := []*contracts.PageJournalEntry{td.JournalEntry(2, "b.aspx", contracts.PageJournalFailed)}

	m.Journal.On("List", mock.Anything, contracts.PageJournalFailed, 20).Return(entries, nil)
	m.Journal.On("List", mock.Anything, contracts.PageJournalStatus("bogus"), 20).Return(nil, errors.New("invalid page journal status"))

	got, err := service.ListJournal(helpers.TestContext(), contracts.PageJournalFailed, 20)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
	assert.True(t, got[0].CreatedAt.Before(got[0].UpdatedAt))
	assert.WithinDuration(t, *helpers.TestTime(1), got[0].CreatedAt, time.Minute)

	_, err = service.ListJournal(helpers.TestContext(), "bogus", 20)
	assert.Error(t, err)
}

func TestPageService_GetPage(t *testing.T) {
	service, m := newPageServiceWithMocks()
	ctx := helpers.TestContext()

	canvas, err := service.PreviewLayout([]byte(helpers.TwoColumnLayout))
	require.NoError(t, err)

	m.Site.On("PageFile", "/SitePages/team.aspx").Return(m.File)
	m.File.On("ServerRelativeURL").Return("/SitePages/team.aspx").Maybe()
	m.File.On("GetItem", mock.Anything).Return(m.Item, nil)
	m.Item.On("Fields", mock.Anything).Return(map[string]any{
		clientside.FieldContentTypeID:  clientside.ClientSidePageContentTypeID + "00AB",
		clientside.FieldCanvasContent:  canvas,
		clientside.FieldPageLayoutType: "Article",
		clientside.FieldPromotedState:  "0",
		clientside.FieldTitle:          "Team",
	}, nil)

	details, err := service.GetPage(ctx, "/SitePages/team.aspx")

	require.NoError(t, err)
	require.Len(t, details.Sections, 1)
	columns := details.Sections[0].Columns
	require.Len(t, columns, 2)
	assert.Equal(t, 6, columns[0].Factor)
	require.Len(t, columns[1].Controls, 1)
	assert.Equal(t, "text", columns[1].Controls[0].Kind)
	assert.Equal(t, "<p>Right</p>", columns[1].Controls[0].Text)
	assert.Equal(t, canvas, details.CanvasContent)
	m.AssertAllExpectations(t)
}

func TestPageService_GetPage_NotClientSidePage(t *testing.T) {
	service, m := newPageServiceWithMocks()

	m.Site.On("PageFile", "/Shared Documents/a.docx").Return(m.File)
	m.File.On("ServerRelativeURL").Return("/Shared Documents/a.docx").Maybe()
	m.File.On("GetItem", mock.Anything).Return(m.Item, nil)
	m.Item.On("Fields", mock.Anything).Return(map[string]any{clientside.FieldContentTypeID: "0x0101"}, nil)

	_, err := service.GetPage(helpers.TestContext(), "/Shared Documents/a.docx")
	assert.ErrorIs(t, err, clientside.ErrNotClientSidePage)

	_, err = service.GetPage(helpers.TestContext(), "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
