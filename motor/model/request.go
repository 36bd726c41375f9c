package model

import (
	"net/http"
	"net/url"
)

// HttpRequest contains the captured request description and content.
type HttpRequest struct {
	// Method of the HTTP request, in caps, GET/POST/etc
	Method string `json:"method"`

	// URL of the request (absolute), including the raw query string.
	URL string `json:"url"`

	// HTTPVersion of the request
	HTTPVersion string `json:"httpVersion,omitempty"` // ex "HTTP/1.1"

	// Headers sent with the request, in capture order.
	Headers []NameValue `json:"headers"`

	// Body of the request as text. Multipart bodies arrive pre-extracted as a JSON
	// array of FormPart.
	Body string `json:"requestBody,omitempty"`
}

// ContentType returns the raw Content-Type header value, or an empty string.
func (r *HttpRequest) ContentType() string {
	return firstValue(r.Headers, "Content-Type")
}

// ExtractHeaders collapses the captured headers into an ordered mapping keyed by the
// canonical header name. Repeated headers are joined with ", ".
func (r *HttpRequest) ExtractHeaders() *OrderedMap {
	return extractHeaders(r.Headers)
}

// ExtractCookies parses every Cookie header. A repeated cookie name keeps the last value.
func (r *HttpRequest) ExtractCookies() *OrderedMap {
	values := findValues(r.Headers, "Cookie")
	req := &http.Request{Header: http.Header{"Cookie": values}}
	cookies := req.Cookies()

	m := NewOrderedMap(len(cookies))
	for _, c := range cookies {
		m.Set(c.Name, c.Value)
	}
	return m
}

// ExtractQuery decodes the query string of the request URL. A repeated key keeps the
// last value; segments that fail to decode are kept as captured.
func (r *HttpRequest) ExtractQuery() *OrderedMap {
	var raw string
	if u, err := url.Parse(r.URL); err == nil {
		raw = u.RawQuery
	}

	pairs := ParsePairs(raw)
	m := NewOrderedMap(len(pairs))
	for _, p := range pairs {
		if p.Err != nil {
			m.Set(p.RawKey, p.RawValue)
			continue
		}
		m.Set(p.Key, p.Value)
	}
	return m
}

func extractHeaders(headers []NameValue) *OrderedMap {
	m := NewOrderedMap(len(headers))
	for _, h := range headers {
		m.Append(http.CanonicalHeaderKey(h.Name), h.Value, ", ")
	}
	return m
}
