package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/txview/inspect"
	"github.com/pb33f/txview/motor/model"
)

// Tab is one page of the inspector panel.
type Tab int

const (
	TabViolations Tab = iota
	TabRequest
	TabResponse
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabRequest:
		return "Request"
	case TabResponse:
		return "Response"
	default:
		return "Violations"
	}
}

// Inspector is the tabbed transaction panel. It owns the presenter and the key/value
// collaborators the presenter feeds.
type Inspector struct {
	presenter *inspect.Presenter

	requestHeaders  *KVView
	requestCookies  *KVView
	requestQuery    *KVView
	responseHeaders *KVView
	responseCookies *KVView

	activeTab Tab
}

// NewInspector wires a presenter to a fresh set of key/value views.
func NewInspector(formatter *inspect.Formatter, logger *slog.Logger) *Inspector {
	i := &Inspector{
		requestHeaders:  NewKVView("Headers", ""),
		requestCookies:  NewKVView("Cookies", inspect.CookieKeyLabel),
		requestQuery:    NewKVView("Query Parameters", inspect.QueryKeyLabel),
		responseHeaders: NewKVView("Headers", ""),
		responseCookies: NewKVView("Cookies", inspect.CookieKeyLabel),
	}

	i.presenter = inspect.NewPresenter(inspect.Sinks{
		RequestHeaders:  i.requestHeaders,
		RequestCookies:  i.requestCookies,
		RequestQuery:    i.requestQuery,
		ResponseHeaders: i.responseHeaders,
		ResponseCookies: i.responseCookies,
	}, formatter, logger)

	return i
}

// SetTransaction shows tx, nil returns to the empty state.
func (i *Inspector) SetTransaction(tx *model.HttpTransaction) {
	i.presenter.SetTransaction(tx)
}

func (i *Inspector) ActiveTab() Tab {
	return i.activeTab
}

func (i *Inspector) SetTab(t Tab) {
	if t >= 0 && t < tabCount {
		i.activeTab = t
	}
}

func (i *Inspector) NextTab() {
	i.activeTab = (i.activeTab + 1) % tabCount
}

func (i *Inspector) PrevTab() {
	i.activeTab = (i.activeTab + tabCount - 1) % tabCount
}

// Render draws the tab bar and the active tab at the given width.
func (i *Inspector) Render(width int) string {
	view := i.presenter.View()
	if view == nil {
		return FaintStyle.Render(inspect.EmptyStateText)
	}

	var b strings.Builder
	b.WriteString(i.renderTabBar(view))
	b.WriteString("\n\n")

	opts := RenderOptions{Width: width, Truncate: true}
	switch i.activeTab {
	case TabRequest:
		b.WriteString(i.renderRequest(view, opts))
	case TabResponse:
		b.WriteString(i.renderResponse(view, opts))
	default:
		b.WriteString(renderViolations(view, width))
	}

	return b.String()
}

func (i *Inspector) renderTabBar(view *inspect.TransactionView) string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		label := t.String()
		switch t {
		case TabViolations:
			if view.Summary.BadgeVisible {
				label += " " + BadgeStyle.Render(fmt.Sprintf("%d", view.Summary.Total))
			}
		case TabResponse:
			if view.Response != nil {
				label += " " + statusStyle(view.Response.StatusClass).Render(fmt.Sprintf("%d", view.Response.StatusCode))
			}
		}

		style := TabStyle
		if t == i.activeTab {
			style = ActiveTabStyle
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderViolations(view *inspect.TransactionView, width int) string {
	if view.Summary.EmptyState {
		return CompliantStyle.Render(inspect.CompliantText)
	}

	var b strings.Builder
	if view.Summary.RequestHeading {
		b.WriteString(renderSectionHeader(inspect.RequestViolationsHeading, width))
		b.WriteString("\n")
		writeViolations(&b, view.RequestViolations)
	}

	if view.Summary.Separator {
		b.WriteString(SeparatorStyle.Render(strings.Repeat("─", max(width, 1))))
		b.WriteString("\n")
	}

	if view.Summary.ResponseHeading {
		b.WriteString(renderSectionHeader(inspect.ResponseViolationsHeading, width))
		b.WriteString("\n")
		writeViolations(&b, view.ResponseViolations)
	}

	return b.String()
}

func writeViolations(b *strings.Builder, violations []*model.Violation) {
	for _, v := range violations {
		if v == nil {
			continue
		}
		b.WriteString(ViolationMessageStyle.Render(inspect.StripControl(v.Message)))
		b.WriteString("\n")
		if reason := inspect.StripControl(v.Reason); reason != "" {
			b.WriteString("  " + reason + "\n")
		}
		if fix := inspect.StripControl(v.HowToFix); fix != "" {
			b.WriteString("  " + HelpStyle.Render("fix: "+fix) + "\n")
		}
		if v.SpecLine > 0 {
			b.WriteString("  " + FaintStyle.Render(fmt.Sprintf("line %d, column %d", v.SpecLine, v.SpecCol)) + "\n")
		}
		b.WriteString("\n")
	}
}

func (i *Inspector) renderRequest(view *inspect.TransactionView, opts RenderOptions) string {
	if view.Request == nil {
		return FaintStyle.Render("No request data")
	}

	sections := []Section{{
		Title: "Request",
		Pairs: []KeyValuePair{
			{"Method", view.Request.Method},
			{"URL", view.Request.URL},
		},
	}}
	for _, kv := range []*KVView{i.requestHeaders, i.requestQuery, i.requestCookies} {
		if s, ok := kv.Section(); ok {
			sections = append(sections, s)
		}
	}

	return renderSections(sections, opts) + renderBody(view.Request.Body, opts)
}

func (i *Inspector) renderResponse(view *inspect.TransactionView, opts RenderOptions) string {
	if view.Response == nil {
		return FaintStyle.Render("No response data")
	}

	resp := view.Response
	status := statusStyle(resp.StatusClass).Render(fmt.Sprintf("%d", resp.StatusCode)) + " " + resp.StatusText

	var b strings.Builder
	b.WriteString(renderSectionHeader("Response", opts.Width))
	b.WriteString("\n")
	b.WriteString(renderStyledRow("Status", status, keyColumnWidth(opts)))
	b.WriteString("\n")

	var sections []Section
	for _, kv := range []*KVView{i.responseHeaders, i.responseCookies} {
		if s, ok := kv.Section(); ok {
			sections = append(sections, s)
		}
	}
	if len(sections) > 0 {
		b.WriteString("\n")
		b.WriteString(renderSections(sections, opts))
	}

	b.WriteString(renderBody(resp.Body, opts))
	return b.String()
}

// renderBody draws a formatted body section; nil means there was no body at all.
func renderBody(section *inspect.BodySection, opts RenderOptions) string {
	if section == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(renderSectionHeader("Body", opts.Width))
	b.WriteString("\n")
	if section.MediaType != "" {
		b.WriteString(FaintStyle.Render(inspect.ContentTypeLabel+": ") + inspect.StripControl(section.MediaType))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if section.Err != nil {
		b.WriteString(ErrorStyle.Render(inspect.UnrenderableBodyText))
		b.WriteString("\n")
		return b.String()
	}

	switch body := section.Body.(type) {
	case *inspect.HighlightedText:
		b.WriteString(body.Markup)
	case *inspect.BinarySuppressed:
		b.WriteString(FaintStyle.Render(inspect.BinaryPlaceholderText))
	case *inspect.KeyValueBody:
		b.WriteString(renderSections([]Section{{
			KeyLabel: body.Label,
			Pairs:    orderedMapToPairs(body.Entries),
		}}, opts))
		for _, err := range body.Errors {
			b.WriteString(FaintStyle.Render(inspect.StripControl(err.Error())))
			b.WriteString("\n")
		}
	case *inspect.FormPartsBody:
		b.WriteString(renderSections(formPartsToSections(body.Parts), opts))
	case *inspect.RawText:
		b.WriteString(inspect.StripControl(body.Text))
	}
	b.WriteString("\n")

	return b.String()
}
