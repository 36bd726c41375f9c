package inspect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-xmlfmt/xmlfmt"
	"github.com/pb33f/txview/motor/model"
	"github.com/yosssi/gohtml"
)

// FormKeyLabel is the key column label for decoded form-urlencoded bodies.
const FormKeyLabel = "Form Key"

// FormatterOptions configures body formatting.
type FormatterOptions struct {
	HighlightFormat string // html, terminal256 or terminal16m
	HighlightStyle  string // chroma style name
	CacheSize       int    // number of formatted bodies to memoise, 0 disables
	Logger          *slog.Logger
}

// DefaultFormatterOptions produces class based HTML markup, the output the web monitor
// consumes.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		HighlightFormat: HighlightHTML,
		HighlightStyle:  "monokai",
		CacheSize:       256,
	}
}

// Formatter turns a classified raw body into a RenderableBody.
type Formatter struct {
	highlighter *highlighter
	cache       *bodyCache
	logger      *slog.Logger
}

// NewFormatter creates a formatter, failing on an unknown highlight format.
func NewFormatter(opts FormatterOptions) (*Formatter, error) {
	defaults := DefaultFormatterOptions()
	if opts.HighlightFormat == "" {
		opts.HighlightFormat = defaults.HighlightFormat
	}
	if opts.HighlightStyle == "" {
		opts.HighlightStyle = defaults.HighlightStyle
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	h, err := newHighlighter(opts.HighlightFormat, opts.HighlightStyle)
	if err != nil {
		return nil, err
	}

	f := &Formatter{
		highlighter: h,
		logger:      opts.Logger,
	}

	if opts.CacheSize > 0 {
		if f.cache, err = newBodyCache(opts.CacheSize); err != nil {
			return nil, fmt.Errorf("failed to create body cache: %w", err)
		}
	}

	return f, nil
}

// Format renders body according to category. Callers skip absent bodies entirely; an
// empty body passed here is formatted like any other. Failures to decode a body that
// claims json or multipart are returned as *BodyParseError.
func (f *Formatter) Format(category ContentTypeCategory, body string) (RenderableBody, error) {
	if f.cache != nil {
		if result, ok := f.cache.get(category, body); ok {
			f.logger.Debug("formatted body served from cache", "category", category, "kind", result.Kind())
			return result, nil
		}
	}

	result, err := f.format(category, body)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.put(category, body, result)
	}
	return result, nil
}

func (f *Formatter) format(category ContentTypeCategory, body string) (RenderableBody, error) {
	switch category {
	case CategoryJSON:
		pretty, err := prettyPrintJSON(body)
		if err != nil {
			return nil, &BodyParseError{Category: category, Err: err}
		}
		return f.highlight(category, pretty)

	case CategoryXML:
		return f.highlight(category, prettyPrintXML(body))

	case CategoryHTML:
		return f.highlight(category, gohtml.Format(body))

	case CategoryOctetStream:
		return &BinarySuppressed{}, nil

	case CategoryFormURLEncoded:
		return parseFormEncoded(body), nil

	case CategoryMultipartForm:
		parts, err := parseFormParts(body)
		if err != nil {
			return nil, &BodyParseError{Category: category, Err: err}
		}
		return &FormPartsBody{Parts: parts}, nil

	default:
		return &RawText{Text: body}, nil
	}
}

func (f *Formatter) highlight(category ContentTypeCategory, text string) (RenderableBody, error) {
	language := category.Language()
	markup, err := f.highlighter.highlight(language, text)
	if err != nil {
		return nil, err
	}
	return &HighlightedText{Language: language, Markup: markup}, nil
}

// prettyPrintJSON re-indents with two spaces, keeping key order as captured.
func prettyPrintJSON(body string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// prettyPrintXML indents with two spaces. xmlfmt emits CRLF line breaks and a leading
// break, both normalised away.
func prettyPrintXML(body string) string {
	formatted := xmlfmt.FormatXML(body, "", "  ")
	formatted = strings.ReplaceAll(formatted, "\r\n", "\n")
	return strings.TrimLeft(formatted, "\n")
}

func parseFormEncoded(body string) *KeyValueBody {
	pairs := model.ParsePairs(body)
	kv := &KeyValueBody{
		Label:   FormKeyLabel,
		Entries: model.NewOrderedMap(len(pairs)),
	}

	for _, p := range pairs {
		switch {
		case p.Err != nil:
			kv.Errors = append(kv.Errors, &BodyParseError{
				Category: CategoryFormURLEncoded,
				Key:      p.RawKey,
				Err:      p.Err,
			})
		case !p.HasValue:
			kv.Errors = append(kv.Errors, &BodyParseError{
				Category: CategoryFormURLEncoded,
				Key:      p.Key,
				Err:      ErrMissingSeparator,
			})
		default:
			kv.Entries.Set(p.Key, p.Value)
		}
	}
	return kv
}

// parseFormParts decodes the pre-extracted part list and re-derives every part type.
// Input type tags are ignored.
func parseFormParts(body string) ([]*model.FormPart, error) {
	var parts []*model.FormPart
	if err := json.Unmarshal([]byte(body), &parts); err != nil {
		return nil, err
	}

	derived := make([]*model.FormPart, 0, len(parts))
	for _, part := range parts {
		if part == nil {
			continue
		}
		p := *part
		p.Type = p.DeriveType()
		derived = append(derived, &p)
	}
	return derived, nil
}
