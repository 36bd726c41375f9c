package inspect

import "net/http"

// StatusClass buckets a response code for styling.
type StatusClass string

const (
	StatusInformational StatusClass = "informational"
	StatusSuccess       StatusClass = "success"
	StatusRedirect      StatusClass = "redirect"
	StatusClientError   StatusClass = "client-error"
	StatusServerError   StatusClass = "server-error"
	StatusUnknown       StatusClass = "unknown"
)

// ClassifyStatus returns the style bucket for an HTTP status code.
func ClassifyStatus(code int) StatusClass {
	switch {
	case code >= 100 && code < 200:
		return StatusInformational
	case code >= 200 && code < 300:
		return StatusSuccess
	case code >= 300 && code < 400:
		return StatusRedirect
	case code >= 400 && code < 500:
		return StatusClientError
	case code >= 500 && code < 600:
		return StatusServerError
	default:
		return StatusUnknown
	}
}

// StatusDefinition returns the standard reason phrase for a code.
func StatusDefinition(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Unknown status code"
}
