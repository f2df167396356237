package gemini

import (
	"errors"
	"net/http"

	"google.golang.org/genai"

	"github.com/kawohq/videogen/internal/videogen"
)

// ClassifyError wraps client-side API failures (bad request, bad key,
// permission denied, unknown model) as terminal so the workflow engine fails
// fast instead of burning retries on them. Rate limits, server errors, and
// network failures are returned unchanged and stay retryable.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return videogen.Terminal(err)
		}
	}
	return err
}
