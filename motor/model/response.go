package model

import "net/http"

// HttpResponse contains the captured response description and content.
type HttpResponse struct {
	// StatusCode indicates the response status
	StatusCode int `json:"statusCode"` // 200

	// StatusText describes the response status as captured
	StatusText string `json:"statusText,omitempty"` // "OK"

	// HTTPVersion of the HTTP response
	HTTPVersion string `json:"httpVersion,omitempty"`

	// Headers sent with the response, in capture order.
	Headers []NameValue `json:"headers"`

	// Body of the response as text (already decoded from any transfer encoding).
	Body string `json:"responseBody,omitempty"`
}

// ContentType returns the raw Content-Type header value, or an empty string.
func (r *HttpResponse) ContentType() string {
	return firstValue(r.Headers, "Content-Type")
}

// ExtractHeaders collapses the captured headers into an ordered mapping keyed by the
// canonical header name. Repeated headers are joined with ", ".
func (r *HttpResponse) ExtractHeaders() *OrderedMap {
	return extractHeaders(r.Headers)
}

// ExtractCookies parses every Set-Cookie header into name -> value. A repeated cookie
// name keeps the last value.
func (r *HttpResponse) ExtractCookies() *OrderedMap {
	values := findValues(r.Headers, "Set-Cookie")
	resp := &http.Response{Header: http.Header{"Set-Cookie": values}}
	cookies := resp.Cookies()

	m := NewOrderedMap(len(cookies))
	for _, c := range cookies {
		m.Set(c.Name, c.Value)
	}
	return m
}
