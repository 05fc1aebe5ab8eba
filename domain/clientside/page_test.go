package clientside

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sppages/domain/sharepoint"
	"sppages/test/mocks"
)

const libraryURL = "https://contoso.sharepoint.com/sites/dev/_api/web/lists/getByTitle('Site Pages')"

func newLibrary(existing []*sharepoint.File) *mocks.MockPageLibrary {
	library := &mocks.MockPageLibrary{}
	library.On("URL").Return(libraryURL).Maybe()
	library.On("FilesByName", mock.Anything, mock.Anything).Return(existing, nil)
	return library
}

func TestCreate_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	library := newLibrary([]*sharepoint.File{})
	file := &mocks.MockPageFile{}
	item := &mocks.MockListItem{}

	library.On("RootFolderServerRelativePath", ctx).Return("/sites/dev/SitePages", nil)
	library.On("AddTemplateFile", ctx, "/sites/dev/SitePages/home.aspx", sharepoint.TemplateFileTypeClientSidePage).Return(file, nil)
	file.On("GetItem", ctx).Return(item, nil)

	var stamped map[string]any
	item.On("Update", ctx, mock.Anything, "*").
		Run(func(args mock.Arguments) { stamped = args.Get(1).(map[string]any) }).
		Return(&sharepoint.ItemUpdateResult{ID: 7}, nil)

	// Act
	page, err := Create(ctx, library, "home.aspx", "Home Page", LayoutHome)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Same(t, file, page.File())
	assert.Empty(t, page.Sections())

	assert.Equal(t, "Home Page", stamped[FieldTitle])
	assert.Equal(t, "Home", stamped[FieldPageLayoutType])
	assert.Equal(t, 0, stamped[FieldPromotedState])
	assert.Equal(t, "", stamped[FieldCanvasContent])
	assert.Equal(t, "0x0101009D1CB255DA76424F860D91F20E6C4118", stamped[FieldContentTypeID])
	assert.Equal(t, "b6917cb1-93a0-4b97-a84d-7cf49975d4ec", stamped[FieldClientSideApplicationID])
	assert.Equal(t, map[string]any{"Url": "/_layouts/15/images/sitepagethumbnail.png"}, stamped[FieldBannerImageURL])

	library.AssertExpectations(t)
	file.AssertExpectations(t)
	item.AssertExpectations(t)
}

func TestCreate_DefaultsToArticleLayout(t *testing.T) {
	ctx := context.Background()
	library := newLibrary(nil)
	file := &mocks.MockPageFile{}
	item := &mocks.MockListItem{}

	library.On("RootFolderServerRelativePath", ctx).Return("SitePages/", nil)
	library.On("AddTemplateFile", ctx, "/SitePages/news.aspx", sharepoint.TemplateFileTypeClientSidePage).Return(file, nil)
	file.On("GetItem", ctx).Return(item, nil)
	item.On("Update", ctx, mock.MatchedBy(func(fields map[string]any) bool {
		return fields[FieldPageLayoutType] == "Article"
	}), "*").Return(&sharepoint.ItemUpdateResult{}, nil)

	_, err := Create(ctx, library, "news.aspx", "News", "")

	require.NoError(t, err)
	item.AssertExpectations(t)
}

func TestCreate_DuplicateNameFailsBeforeMutation(t *testing.T) {
	ctx := context.Background()
	library := newLibrary([]*sharepoint.File{{Name: "X.aspx"}})

	page, err := Create(ctx, library, "X.aspx", "X", LayoutArticle)

	require.ErrorIs(t, err, ErrDuplicateName)
	assert.Nil(t, page)
	assert.Contains(t, err.Error(), "X.aspx")
	assert.Contains(t, err.Error(), libraryURL)
	library.AssertNotCalled(t, "RootFolderServerRelativePath", mock.Anything)
	library.AssertNumberOfCalls(t, "AddTemplateFile", 0)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	library := &mocks.MockPageLibrary{}

	_, err := Create(context.Background(), library, "home.aspx", "Home", LayoutType("Wiki"))
	require.ErrorIs(t, err, ErrInvalidLayoutType)

	_, err = Create(context.Background(), library, "", "Home", LayoutHome)
	require.ErrorIs(t, err, ErrInvalidPageName)

	library.AssertNotCalled(t, "FilesByName", mock.Anything, mock.Anything)
}

func TestCreate_RejectsPathLikeNames(t *testing.T) {
	names := []string{
		"../../Shared Documents/x.aspx",
		"sub/x.aspx",
		`sub\x.aspx`,
		"/x.aspx",
		"..",
		".",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			library := newLibrary([]*sharepoint.File{})

			page, err := Create(context.Background(), library, name, "X", LayoutArticle)

			require.ErrorIs(t, err, ErrInvalidPageName)
			assert.Nil(t, page)
			library.AssertNotCalled(t, "FilesByName", mock.Anything, mock.Anything)
			library.AssertNumberOfCalls(t, "AddTemplateFile", 0)
		})
	}
}

func TestValidatePageName_AcceptsDottedFileName(t *testing.T) {
	assert.NoError(t, ValidatePageName("release..notes.aspx"))
	assert.NoError(t, ValidatePageName("home.aspx"))
}

func TestCreate_RemoteFailures(t *testing.T) {
	remoteErr := errors.New("boom")

	tests := []struct {
		name        string
		setup       func(library *mocks.MockPageLibrary, file *mocks.MockPageFile, item *mocks.MockListItem)
		wantPartial bool
	}{
		{
			name: "root_folder",
			setup: func(library *mocks.MockPageLibrary, file *mocks.MockPageFile, item *mocks.MockListItem) {
				library.On("RootFolderServerRelativePath", mock.Anything).Return("", remoteErr)
			},
		},
		{
			name: "add_template_file",
			setup: func(library *mocks.MockPageLibrary, file *mocks.MockPageFile, item *mocks.MockListItem) {
				library.On("RootFolderServerRelativePath", mock.Anything).Return("/SitePages", nil)
				library.On("AddTemplateFile", mock.Anything, mock.Anything, mock.Anything).Return(nil, remoteErr)
			},
		},
		{
			name: "get_item",
			setup: func(library *mocks.MockPageLibrary, file *mocks.MockPageFile, item *mocks.MockListItem) {
				library.On("RootFolderServerRelativePath", mock.Anything).Return("/SitePages", nil)
				library.On("AddTemplateFile", mock.Anything, mock.Anything, mock.Anything).Return(file, nil)
				file.On("GetItem", mock.Anything).Return(nil, remoteErr)
			},
			wantPartial: true,
		},
		{
			name: "update_item",
			setup: func(library *mocks.MockPageLibrary, file *mocks.MockPageFile, item *mocks.MockListItem) {
				library.On("RootFolderServerRelativePath", mock.Anything).Return("/SitePages", nil)
				library.On("AddTemplateFile", mock.Anything, mock.Anything, mock.Anything).Return(file, nil)
				file.On("GetItem", mock.Anything).Return(item, nil)
				item.On("Update", mock.Anything, mock.Anything, "*").Return(nil, remoteErr)
			},
			wantPartial: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			library := newLibrary(nil)
			file := &mocks.MockPageFile{}
			item := &mocks.MockListItem{}
			tt.setup(library, file, item)

			page, err := Create(context.Background(), library, "p.aspx", "P", LayoutArticle)

			assert.Nil(t, page)
			require.ErrorIs(t, err, remoteErr)

			var partial *PartialCreateError
			assert.Equal(t, tt.wantPartial, errors.As(err, &partial))
			if tt.wantPartial {
				assert.Equal(t, "/SitePages/p.aspx", partial.ServerRelativeURL)
			}
		})
	}
}

func TestPage_UpdateProperties(t *testing.T) {
	ctx := context.Background()
	file := &mocks.MockPageFile{}
	item := &mocks.MockListItem{}
	file.On("GetItem", ctx).Return(item, nil)
	fields := map[string]any{FieldTitle: "Renamed"}
	expected := &sharepoint.ItemUpdateResult{ID: 3, Fields: fields}
	item.On("Update", ctx, fields, "*").Return(expected, nil).Once()
	item.On("Update", ctx, fields, `"4"`).Return(expected, nil).Once()

	page := NewPage(file)

	result, err := page.UpdateProperties(ctx, fields, "")
	require.NoError(t, err)
	assert.Same(t, expected, result)

	_, err = page.UpdateProperties(ctx, fields, `"4"`)
	require.NoError(t, err)

	item.AssertExpectations(t)
}

func TestPage_UpdateProperties_ETagMismatch(t *testing.T) {
	ctx := context.Background()
	file := &mocks.MockPageFile{}
	item := &mocks.MockListItem{}
	file.On("GetItem", ctx).Return(item, nil)
	file.On("ServerRelativeURL").Return("/SitePages/a.aspx")
	item.On("Update", ctx, mock.Anything, `"1"`).Return(nil, sharepoint.ErrETagMismatch)

	_, err := NewPage(file).UpdateProperties(ctx, map[string]any{FieldTitle: "x"}, `"1"`)

	require.ErrorIs(t, err, sharepoint.ErrETagMismatch)
	assert.NotErrorIs(t, err, sharepoint.ErrRemote)
}

func TestPage_RemoteOperationsRequireFile(t *testing.T) {
	ctx := context.Background()
	page := NewPage(nil)

	_, err := page.UpdateProperties(ctx, map[string]any{}, "")
	assert.ErrorIs(t, err, ErrNoFile)
	assert.ErrorIs(t, page.Delete(ctx), ErrNoFile)
	assert.ErrorIs(t, page.Save(ctx), ErrNoFile)
	assert.ErrorIs(t, page.DisableComments(ctx), ErrNoFile)
}

func TestPage_Delete(t *testing.T) {
	ctx := context.Background()

	file := &mocks.MockPageFile{}
	file.On("Delete", ctx).Return(nil).Once()
	require.NoError(t, NewPage(file).Delete(ctx))

	failing := &mocks.MockPageFile{}
	failing.On("Delete", ctx).Return(sharepoint.ErrNotFound)
	failing.On("ServerRelativeURL").Return("/SitePages/gone.aspx")
	err := NewPage(failing).Delete(ctx)
	require.ErrorIs(t, err, sharepoint.ErrNotFound)
	assert.Contains(t, err.Error(), "/SitePages/gone.aspx")

	file.AssertExpectations(t)
}

func TestPage_Save_WritesCanvas(t *testing.T) {
	ctx := context.Background()
	file := &mocks.MockPageFile{}
	item := &mocks.MockListItem{}
	file.On("GetItem", ctx).Return(item, nil)

	page := NewPage(file)
	page.AddSection().AddControl(NewTextControl("hello"))
	expected := page.ToHTML()

	item.On("Update", ctx, map[string]any{FieldCanvasContent: expected}, "*").Return(&sharepoint.ItemUpdateResult{}, nil)

	require.NoError(t, page.Save(ctx))
	item.AssertExpectations(t)
}

func TestPage_Comments(t *testing.T) {
	ctx := context.Background()
	file := &mocks.MockPageFile{}
	item := &mocks.MockListItem{}
	file.On("GetItem", ctx).Return(item, nil)
	item.On("SetCommentsDisabled", ctx, true).Return(nil).Once()
	item.On("SetCommentsDisabled", ctx, false).Return(nil).Once()

	page := NewPage(file)
	require.NoError(t, page.DisableComments(ctx))
	require.NoError(t, page.EnableComments(ctx))

	item.AssertExpectations(t)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	source := NewPage(nil)
	source.AddSection().AddControl(NewTextControl("loaded"))

	file := &mocks.MockPageFile{}
	item := &mocks.MockListItem{}
	file.On("GetItem", ctx).Return(item, nil)
	file.On("ServerRelativeURL").Return("/SitePages/a.aspx").Maybe()
	item.On("Fields", ctx).Return(map[string]any{
		FieldContentTypeID:  ClientSidePageContentTypeID + "00ABCDEF",
		FieldTitle:          "A",
		FieldPromotedState:  "0",
		FieldCanvasContent:  source.ToHTML(),
		FieldPageLayoutType: "Article",
	}, nil)

	page, err := Load(ctx, file)

	require.NoError(t, err)
	require.Len(t, page.Sections(), 1)
	assert.Same(t, page, page.Sections()[0].Page())
	assert.Equal(t, source.ToHTML(), page.ToHTML())
}

func TestLoad_RejectsOtherContentTypes(t *testing.T) {
	ctx := context.Background()
	file := &mocks.MockPageFile{}
	item := &mocks.MockListItem{}
	file.On("GetItem", ctx).Return(item, nil)
	file.On("ServerRelativeURL").Return("/Shared Documents/a.docx")
	item.On("Fields", ctx).Return(map[string]any{FieldContentTypeID: "0x0101"}, nil)

	_, err := Load(ctx, file)
	require.ErrorIs(t, err, ErrNotClientSidePage)

	missing := &mocks.MockListItem{}
	other := &mocks.MockPageFile{}
	other.On("GetItem", ctx).Return(missing, nil)
	missing.On("Fields", ctx).Return(map[string]any{FieldTitle: "no content type"}, nil)

	_, err = Load(ctx, other)
	require.ErrorIs(t, err, sharepoint.ErrMalformedResponse)
}
