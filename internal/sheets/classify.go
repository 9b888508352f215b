package sheets

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// Upstream error classification. The structured googleapi.Error code is
// authoritative; substring matching on the message is a documented
// heuristic fallback for unstructured errors and may not cover every
// upstream shape.

// IsPermissionDenied reports whether err looks like a sharing or
// permission failure.
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusForbidden {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "permission")
}

// IsNotFound reports whether err looks like a missing spreadsheet.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "404")
}

// StatusCode extracts the upstream HTTP status from a Sheets API error.
// Returns 0 when the error carries no structured code.
func StatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
