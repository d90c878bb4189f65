package adapter

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError returns nil for 2xx responses and an [*APIError] otherwise.
func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	detail := ""
	if body, ok := resp.Error().(*models.ErrorResponse); ok && body != nil {
		detail = body.Detail
	}
	if detail == "" {
		detail = strings.TrimSpace(string(resp.Body()))
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode())
	}

	return &APIError{StatusCode: resp.StatusCode(), Detail: detail}
}
