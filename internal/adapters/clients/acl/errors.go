// Package acl implements the Anti-Corruption Layer that translates between
// the external identity provider's representations and domain types. The
// caller translator lives in the acl/user subpackage; shared error mapping
// lives here.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nnmc-digital/projectboard/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// errorEnvelope represents the identity provider's error response shape:
// a null data field alongside an error object carrying status, name, and
// a human-readable message.
type errorEnvelope struct {
	Error providerError `json:"error"`
}

// providerError is the error object inside an errorEnvelope.
type providerError struct {
	Status  int    `json:"status"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// TranslateHTTPError maps an HTTP error response from the identity provider
// to a domain error. It parses the provider's JSON error envelope when
// present, using the message field for context.
func TranslateHTTPError(resp *http.Response) error {
	detail := parseErrorMessage(resp)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnauthenticated)

	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", detail, domain.ErrForbidden)

	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)

	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)

	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)

	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// parseErrorMessage attempts to read the provider's error envelope from the
// response body. Returns an empty string if parsing fails.
func parseErrorMessage(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/json") {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return ""
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Error.Message
}
