// Package errmsg turns errors into the single line shown to users.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/dalemusser/workbookhub/internal/app/system/backend"
)

// Fallback is shown when nothing more specific is known.
const Fallback = "An unexpected error occurred"

// Message returns the most specific user-facing text for err:
//   - backend 422: the backend's validation detail
//   - other backend status: "API error (<status>)"
//   - any other error: its message
//   - nil: Fallback
func Message(err error) string {
	if err == nil {
		return Fallback
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsValidation() && apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fmt.Sprintf("API error (%d)", apiErr.StatusCode)
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return Fallback
}
