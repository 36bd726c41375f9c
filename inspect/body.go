package inspect

import "github.com/pb33f/txview/motor/model"

// BodyKind tags the variants of RenderableBody.
type BodyKind int

const (
	KindRawText BodyKind = iota
	KindHighlightedText
	KindBinarySuppressed
	KindKeyValue
	KindFormParts
)

func (k BodyKind) String() string {
	switch k {
	case KindHighlightedText:
		return "highlighted-text"
	case KindBinarySuppressed:
		return "binary-suppressed"
	case KindKeyValue:
		return "key-value"
	case KindFormParts:
		return "form-parts"
	default:
		return "raw-text"
	}
}

// RenderableBody is what the formatter hands to the display layer. The set of
// implementations is closed: HighlightedText, BinarySuppressed, KeyValueBody,
// FormPartsBody and RawText. Values may be shared through the formatter cache and must
// be treated as read-only.
type RenderableBody interface {
	Kind() BodyKind
	renderable()
}

// HighlightedText holds markup produced by the highlighter, the only producer of markup.
type HighlightedText struct {
	Language string
	Markup   string
}

// BinarySuppressed stands in for bodies that are never decoded or displayed.
type BinarySuppressed struct{}

// KeyValueBody is a decoded form-urlencoded body. Entries that failed to decode are
// left out of Entries and reported in Errors.
type KeyValueBody struct {
	Label   string
	Entries *model.OrderedMap
	Errors  []*BodyParseError
}

// FormPartsBody is a multipart body with each part's type re-derived.
type FormPartsBody struct {
	Parts []*model.FormPart
}

// RawText is displayed verbatim as safe text, never as markup.
type RawText struct {
	Text string
}

func (*HighlightedText) Kind() BodyKind  { return KindHighlightedText }
func (*BinarySuppressed) Kind() BodyKind { return KindBinarySuppressed }
func (*KeyValueBody) Kind() BodyKind     { return KindKeyValue }
func (*FormPartsBody) Kind() BodyKind    { return KindFormParts }
func (*RawText) Kind() BodyKind          { return KindRawText }

func (*HighlightedText) renderable()  {}
func (*BinarySuppressed) renderable() {}
func (*KeyValueBody) renderable()     {}
func (*FormPartsBody) renderable()    {}
func (*RawText) renderable()          {}
