package spclient

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"sppages/domain/sharepoint"
)

// gosip reports failed responses as "<status code> <status text> :: <body>".
var statusPrefix = regexp.MustCompile(`^\s*(\d{3})\b`)

// statusCode extracts the HTTP status of a gosip error, or 0 when there is none.
func statusCode(err error) int {
	m := statusPrefix.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	code, _ := strconv.Atoi(m[1])
	return code
}

// classifyError maps a transport error onto the sharepoint sentinels, keeping
// the original message for diagnostics.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var sentinel error
	switch code := statusCode(err); {
	case code == 404:
		sentinel = sharepoint.ErrNotFound
	case code == 401 || code == 403:
		sentinel = sharepoint.ErrAccessDenied
	case code == 409:
		sentinel = sharepoint.ErrConflict
	case code == 412:
		sentinel = sharepoint.ErrETagMismatch
	default:
		sentinel = sharepoint.ErrRemote
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
