package inspect

import (
	"strings"

	"github.com/pb33f/txview/motor/model"
)

// ContentTypeCategory is the classified content-type bucket that drives body rendering.
type ContentTypeCategory int

const (
	CategoryOther ContentTypeCategory = iota
	CategoryJSON
	CategoryXML
	CategoryHTML
	CategoryOctetStream
	CategoryFormURLEncoded
	CategoryMultipartForm
)

const (
	ContentTypeJSON          = "application/json"
	ContentTypeXML           = "application/xml"
	ContentTypeTextXML       = "text/xml"
	ContentTypeHTML          = "text/html"
	ContentTypeOctetStream   = "application/octet-stream"
	ContentTypeFormEncoded   = "application/x-www-form-urlencoded"
	ContentTypeMultipartForm = "multipart/form-data"
)

// highlighting grammars
const (
	LanguageJSON = "json"
	LanguageXML  = "xml"
)

// String returns the short name of the category.
func (c ContentTypeCategory) String() string {
	switch c {
	case CategoryJSON:
		return "json"
	case CategoryXML:
		return "xml"
	case CategoryHTML:
		return "html"
	case CategoryOctetStream:
		return "octet-stream"
	case CategoryFormURLEncoded:
		return "form-urlencoded"
	case CategoryMultipartForm:
		return "multipart-form"
	default:
		return "other"
	}
}

// MediaType returns the canonical media type for the category, empty for CategoryOther.
func (c ContentTypeCategory) MediaType() string {
	switch c {
	case CategoryJSON:
		return ContentTypeJSON
	case CategoryXML:
		return ContentTypeXML
	case CategoryHTML:
		return ContentTypeHTML
	case CategoryOctetStream:
		return ContentTypeOctetStream
	case CategoryFormURLEncoded:
		return ContentTypeFormEncoded
	case CategoryMultipartForm:
		return ContentTypeMultipartForm
	default:
		return ""
	}
}

// Language returns the highlighting grammar for the category. XML and HTML share the
// xml grammar; categories that are not highlighted return an empty string.
func (c ContentTypeCategory) Language() string {
	switch c {
	case CategoryJSON:
		return LanguageJSON
	case CategoryXML, CategoryHTML:
		return LanguageXML
	default:
		return ""
	}
}

// Classify finds the Content-Type header (name matched case-insensitively) and
// classifies it. Missing headers classify as CategoryOther.
func Classify(headers []model.NameValue) ContentTypeCategory {
	for _, h := range headers {
		if strings.EqualFold(h.Name, "Content-Type") {
			return ClassifyContentType(h.Value)
		}
	}
	return CategoryOther
}

// ClassifyContentType classifies a raw Content-Type header value. Only the media type
// before any ';' parameter is considered.
func ClassifyContentType(value string) ContentTypeCategory {
	mt := MediaType(value)

	switch {
	case strings.HasPrefix(mt, ContentTypeJSON):
		return CategoryJSON
	case strings.HasPrefix(mt, ContentTypeTextXML), strings.HasPrefix(mt, ContentTypeXML):
		return CategoryXML
	case strings.HasPrefix(mt, ContentTypeHTML):
		return CategoryHTML
	case strings.HasPrefix(mt, ContentTypeOctetStream):
		return CategoryOctetStream
	case strings.HasPrefix(mt, ContentTypeFormEncoded):
		return CategoryFormURLEncoded
	case strings.HasPrefix(mt, ContentTypeMultipartForm):
		return CategoryMultipartForm
	default:
		return CategoryOther
	}
}

// MediaType strips parameters from a Content-Type value and lower-cases it.
func MediaType(value string) string {
	mt, _, _ := strings.Cut(value, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
