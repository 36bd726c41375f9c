package motor

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/pb33f/harhar"
	"github.com/pb33f/txview/motor/model"
)

// ConvertEntry maps a HAR entry onto a transaction. HAR keeps the body MIME type and
// cookies apart from the headers; when the headers lack them they are synthesised so
// classification and cookie extraction only ever look at headers.
func ConvertEntry(index int, e *harhar.Entry) *Entry {
	entry := &Entry{
		Index:    index,
		Duration: e.Time,
		Transaction: &model.HttpTransaction{
			Request:  convertRequest(&e.Request),
			Response: convertResponse(&e.Response),
		},
	}

	if e.Start != "" {
		if t, err := time.Parse(time.RFC3339, e.Start); err == nil {
			entry.Start = t
		}
	}

	return entry
}

func convertRequest(r *harhar.Request) *model.HttpRequest {
	if r.Method == "" && r.URL == "" {
		return nil
	}

	headers := convertHeaders(r.Headers)
	headers = withContentType(headers, r.Body.MIMEType)

	if !hasHeader(headers, "Cookie") && len(r.Cookies) > 0 {
		pairs := make([]string, len(r.Cookies))
		for i, c := range r.Cookies {
			pairs[i] = c.Name + "=" + c.Value
		}
		headers = append(headers, model.NameValue{Name: "Cookie", Value: strings.Join(pairs, "; ")})
	}

	return &model.HttpRequest{
		Method:      r.Method,
		URL:         r.URL,
		HTTPVersion: r.HTTPVersion,
		Headers:     headers,
		Body:        r.Body.Content,
	}
}

func convertResponse(r *harhar.Response) *model.HttpResponse {
	// browsers record aborted requests with a zero status and nothing else
	if r.StatusCode == 0 && len(r.Headers) == 0 && r.Body.Content == "" {
		return nil
	}

	headers := convertHeaders(r.Headers)
	headers = withContentType(headers, r.Body.MIMEType)

	if !hasHeader(headers, "Set-Cookie") {
		for _, c := range r.Cookies {
			headers = append(headers, model.NameValue{Name: "Set-Cookie", Value: c.Name + "=" + c.Value})
		}
	}

	return &model.HttpResponse{
		StatusCode:  r.StatusCode,
		StatusText:  r.StatusText,
		HTTPVersion: r.HTTPVersion,
		Headers:     headers,
		Body:        r.Body.Content,
	}
}

func convertHeaders(nvps []harhar.NameValuePair) []model.NameValue {
	headers := make([]model.NameValue, len(nvps))
	for i, nvp := range nvps {
		headers[i] = model.NameValue{Name: nvp.Name, Value: nvp.Value}
	}
	return headers
}

func withContentType(headers []model.NameValue, mimeType string) []model.NameValue {
	if mimeType == "" || hasHeader(headers, "Content-Type") {
		return headers
	}
	return append(headers, model.NameValue{Name: "Content-Type", Value: mimeType})
}

func hasHeader(headers []model.NameValue, name string) bool {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}

// DecodeContent undoes base64 transport encoding, keeping the text when it is not valid.
func DecodeContent(text, encoding string) string {
	if encoding == "base64" && text != "" {
		if decoded, err := base64.StdEncoding.DecodeString(text); err == nil {
			return string(decoded)
		}
	}
	return text
}
