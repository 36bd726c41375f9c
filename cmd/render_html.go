package cmd

import (
	"fmt"
	"html"
	"io"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pb33f/txview/inspect"
	"github.com/pb33f/txview/motor/model"
)

// collectSink keeps the last mapping pushed by the presenter
type collectSink struct {
	data *model.OrderedMap
}

func (s *collectSink) SetData(data *model.OrderedMap) {
	s.data = data
}

type htmlSinks struct {
	requestHeaders, requestCookies, requestQuery, responseHeaders, responseCookies collectSink
}

const pageStyles = `body { font-family: sans-serif; margin: 2em; }
table.kv td.key { color: #888; text-align: right; padding-right: 1em; }
pre.chroma, pre.raw { padding: 1em; overflow: auto; }
.badge { color: #e00; font-weight: bold; }
.compliant { color: #080; font-weight: bold; }
.empty, .binary { color: #888; }
.error { color: #e00; }
.status-success { color: #080; }
.status-redirect { color: #08c; }
.status-client-error { color: #c80; }
.status-server-error { color: #e00; }
`

// renderHTML writes a standalone page. Only the highlighter produces markup; every other
// value is escaped here.
func renderHTML(w io.Writer, tx *model.HttpTransaction, formatter *inspect.Formatter, opts renderOptions) error {
	var sinks htmlSinks
	presenter := inspect.NewPresenter(inspect.Sinks{
		RequestHeaders:  &sinks.requestHeaders,
		RequestCookies:  &sinks.requestCookies,
		RequestQuery:    &sinks.requestQuery,
		ResponseHeaders: &sinks.responseHeaders,
		ResponseCookies: &sinks.responseCookies,
	}, formatter, opts.Logger)
	presenter.SetTransaction(tx)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>txview</title>\n<style>\n")
	b.WriteString(pageStyles)
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&b, styles.Get(opts.Style)); err != nil {
		return fmt.Errorf("failed to write highlight stylesheet: %w", err)
	}
	b.WriteString("</style>\n</head>\n<body>\n")

	view := presenter.View()
	if view == nil {
		fmt.Fprintf(&b, "<p class=\"empty\">%s</p>\n", html.EscapeString(inspect.EmptyStateText))
	} else {
		writeHTMLViolations(&b, view)
		writeHTMLRequest(&b, view, &sinks)
		writeHTMLResponse(&b, view, &sinks)
	}

	b.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeHTMLViolations(b *strings.Builder, view *inspect.TransactionView) {
	b.WriteString("<section class=\"violations\">\n<h2>Violations")
	if view.Summary.BadgeVisible {
		fmt.Fprintf(b, " <span class=\"badge\">%d</span>", view.Summary.Total)
	}
	b.WriteString("</h2>\n")

	if view.Summary.EmptyState {
		fmt.Fprintf(b, "<p class=\"compliant\">%s</p>\n", html.EscapeString(inspect.CompliantText))
	}
	if view.Summary.RequestHeading {
		fmt.Fprintf(b, "<h3>%s</h3>\n", inspect.RequestViolationsHeading)
		writeHTMLViolationList(b, view.RequestViolations)
	}
	if view.Summary.Separator {
		b.WriteString("<hr>\n")
	}
	if view.Summary.ResponseHeading {
		fmt.Fprintf(b, "<h3>%s</h3>\n", inspect.ResponseViolationsHeading)
		writeHTMLViolationList(b, view.ResponseViolations)
	}
	b.WriteString("</section>\n")
}

func writeHTMLViolationList(b *strings.Builder, violations []*model.Violation) {
	b.WriteString("<ul>\n")
	for _, v := range violations {
		if v == nil {
			continue
		}
		fmt.Fprintf(b, "<li><strong>%s</strong>", html.EscapeString(v.Message))
		if v.Reason != "" {
			fmt.Fprintf(b, "<br>%s", html.EscapeString(v.Reason))
		}
		if v.HowToFix != "" {
			fmt.Fprintf(b, "<br><em>%s</em>", html.EscapeString(v.HowToFix))
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}

func writeHTMLRequest(b *strings.Builder, view *inspect.TransactionView, sinks *htmlSinks) {
	if view.Request == nil {
		return
	}
	req := view.Request
	fmt.Fprintf(b, "<section class=\"request\">\n<h2>Request</h2>\n<p><strong>%s</strong> %s</p>\n",
		html.EscapeString(req.Method), html.EscapeString(req.URL))
	writeHTMLTable(b, "Headers", "", sinks.requestHeaders.data)
	writeHTMLTable(b, "Query Parameters", inspect.QueryKeyLabel, sinks.requestQuery.data)
	writeHTMLTable(b, "Cookies", inspect.CookieKeyLabel, sinks.requestCookies.data)
	writeHTMLBody(b, req.Body)
	b.WriteString("</section>\n")
}

func writeHTMLResponse(b *strings.Builder, view *inspect.TransactionView, sinks *htmlSinks) {
	if view.Response == nil {
		return
	}
	resp := view.Response
	fmt.Fprintf(b, "<section class=\"response\">\n<h2>Response <span class=\"status status-%s\">%d</span> %s</h2>\n",
		resp.StatusClass, resp.StatusCode, html.EscapeString(resp.StatusText))
	writeHTMLTable(b, "Headers", "", sinks.responseHeaders.data)
	writeHTMLTable(b, "Cookies", inspect.CookieKeyLabel, sinks.responseCookies.data)
	writeHTMLBody(b, resp.Body)
	b.WriteString("</section>\n")
}

func writeHTMLTable(b *strings.Builder, title, keyLabel string, data *model.OrderedMap) {
	if data.Len() == 0 {
		return
	}
	if title != "" {
		fmt.Fprintf(b, "<h3>%s</h3>\n", html.EscapeString(title))
	}
	b.WriteString("<table class=\"kv\">\n")
	if keyLabel != "" {
		fmt.Fprintf(b, "<tr><th>%s</th><th>Value</th></tr>\n", html.EscapeString(keyLabel))
	}
	data.Range(func(key, value string) bool {
		fmt.Fprintf(b, "<tr><td class=\"key\">%s</td><td>%s</td></tr>\n", html.EscapeString(key), html.EscapeString(value))
		return true
	})
	b.WriteString("</table>\n")
}

func writeHTMLBody(b *strings.Builder, section *inspect.BodySection) {
	if section == nil {
		return
	}

	b.WriteString("<h3>Body</h3>\n")
	if section.MediaType != "" {
		fmt.Fprintf(b, "<p>%s: %s</p>\n", inspect.ContentTypeLabel, html.EscapeString(section.MediaType))
	}

	if section.Err != nil {
		fmt.Fprintf(b, "<p class=\"error\">%s</p>\n", html.EscapeString(inspect.UnrenderableBodyText))
		return
	}

	switch body := section.Body.(type) {
	case *inspect.HighlightedText:
		fmt.Fprintf(b, "<pre class=\"chroma\">%s</pre>\n", body.Markup)
	case *inspect.BinarySuppressed:
		fmt.Fprintf(b, "<p class=\"binary\">%s</p>\n", html.EscapeString(inspect.BinaryPlaceholderText))
	case *inspect.KeyValueBody:
		writeHTMLTable(b, "", body.Label, body.Entries)
		for _, err := range body.Errors {
			fmt.Fprintf(b, "<p class=\"error\">%s</p>\n", html.EscapeString(err.Error()))
		}
	case *inspect.FormPartsBody:
		b.WriteString("<table class=\"parts\">\n<tr><th>Name</th><th>Type</th><th>Value</th><th>Files</th></tr>\n")
		for _, part := range body.Parts {
			files := make([]string, 0, len(part.Files))
			for _, f := range part.Files {
				if f != nil {
					files = append(files, html.EscapeString(f.Name))
				}
			}
			fmt.Fprintf(b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				html.EscapeString(part.Name), html.EscapeString(part.Type), html.EscapeString(part.Value), strings.Join(files, "<br>"))
		}
		b.WriteString("</table>\n")
	case *inspect.RawText:
		fmt.Fprintf(b, "<pre class=\"raw\">%s</pre>\n", html.EscapeString(body.Text))
	}
}
