package clientside

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is returned by Create when the library already holds a file with the page name.
	ErrDuplicateName = errors.New("a file with the same name already exists")

	// ErrInvalidPageName is returned by Create for names that are not a single file name in the library root.
	ErrInvalidPageName = errors.New("invalid page name")

	// ErrInvalidFactor is returned when a column factor is outside {0,2,4,6,8,12}.
	ErrInvalidFactor = errors.New("invalid column factor")

	// ErrInvalidLayoutType is returned for page layout types other than Article and Home.
	ErrInvalidLayoutType = errors.New("invalid page layout type")

	// ErrNoFile is returned by remote operations on a page that is not bound to a file.
	ErrNoFile = errors.New("page is not bound to a file")

	// ErrNotClientSidePage is returned by Load when the file's item is not a client side page.
	ErrNotClientSidePage = errors.New("file is not a client side page")

	// ErrInvalidLayout is returned when a layout document fails validation.
	ErrInvalidLayout = errors.New("invalid page layout document")
)

// PartialCreateError reports a Create failure that happened after the page file
// was added to the library. The file stays on the server without page metadata.
type PartialCreateError struct {
	ServerRelativeURL string
	Err               error
}

func (e *PartialCreateError) Error() string {
	return fmt.Sprintf("page file %s created but not initialized: %v", e.ServerRelativeURL, e.Err)
}

func (e *PartialCreateError) Unwrap() error {
	return e.Err
}
