package sharepoint

import "errors"

// Remote failures classified from SharePoint REST responses.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrConflict          = errors.New("conflict")
	ErrETagMismatch      = errors.New("etag mismatch")
	ErrRemote            = errors.New("sharepoint request failed")
	ErrMalformedResponse = errors.New("malformed sharepoint response")
)
