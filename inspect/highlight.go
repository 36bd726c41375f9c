package inspect

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlight output formats
const (
	HighlightHTML        = "html"
	HighlightTerminal256 = "terminal256"
	HighlightTerminal16m = "terminal16m"
)

// highlighter turns text into markup for a grammar. It never inserts anything that did
// not come out of the lexer, and escapes everything it emits.
type highlighter struct {
	formatter chroma.Formatter
	style     *chroma.Style
	format    string
}

func newHighlighter(format, styleName string) (*highlighter, error) {
	var f chroma.Formatter
	switch format {
	case HighlightHTML:
		// class based spans without the surrounding <pre>, the display layer owns that
		f = html.New(html.WithClasses(true), html.PreventSurroundingPre(true))
	case HighlightTerminal256, HighlightTerminal16m:
		f = formatters.Get(format)
	default:
		return nil, fmt.Errorf("unknown highlight format '%s'", format)
	}

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	return &highlighter{
		formatter: f,
		style:     style,
		format:    format,
	}, nil
}

func (h *highlighter) highlight(language, text string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	// the formatter re-emits token text verbatim, so captured escapes must go first
	iterator, err := lexer.Tokenise(nil, StripControl(text))
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s: %w", language, err)
	}

	var out strings.Builder
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		return "", fmt.Errorf("failed to highlight %s: %w", language, err)
	}
	return out.String(), nil
}
