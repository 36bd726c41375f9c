package tui

import (
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/pb33f/txview/inspect"
	"github.com/pb33f/txview/motor"
)

func (m *HARViewModel) buildTableRows() {
	rows := make([]table.Row, 0, len(m.entries))

	for _, entry := range m.entries {
		rows = append(rows, formatEntryRow(entry, m.width))
	}

	m.rows = rows
}

func formatEntryRow(entry *motor.Entry, terminalWidth int) table.Row {
	return table.Row{
		formatMethod(inspect.StripControl(entry.Method())),
		formatURL(inspect.StripControl(entry.URL()), terminalWidth),
		formatStatus(entry.StatusCode()),
		formatViolations(entry.ViolationCount()),
		formatDuration(entry.Duration),
	}
}

func formatMethod(method string) string {
	if method == "" {
		return "---"
	}

	if ansi.StringWidth(method) > 7 {
		return ansi.Truncate(method, 7, "")
	}

	return method
}

func formatURL(fullURL string, terminalWidth int) string {
	if fullURL == "" {
		return "/"
	}

	u, err := url.Parse(fullURL)
	if err != nil {
		return truncateString(fullURL, maxURLDisplayLength)
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	if u.RawQuery != "" {
		path = path + "?" + u.RawQuery
	}

	availableWidth := terminalWidth - methodColumnWidth - statusColumnWidth - violationsColumnWidth - durationColumnWidth - 10
	if availableWidth < minURLColumnWidth {
		availableWidth = minURLColumnWidth
	}
	if availableWidth > maxURLColumnWidth {
		availableWidth = maxURLColumnWidth
	}

	return truncateString(path, availableWidth)
}

func formatStatus(code int) string {
	if code == 0 {
		return "---"
	}
	return fmt.Sprintf("%d", code)
}

func formatViolations(count int) string {
	if count == 0 {
		return "---"
	}
	return fmt.Sprintf("%s %d", violationMarker, count)
}

func formatDuration(durationMs float64) string {
	if durationMs == 0 {
		return "---"
	}

	d := time.Duration(durationMs * float64(time.Millisecond))

	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dμs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		seconds := float64(d.Milliseconds()) / 1000.0
		return fmt.Sprintf("%.1fs", seconds)
	default:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) - (minutes * 60)
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// truncateString cuts by display width so multi-byte runes are never split.
func truncateString(s string, maxLen int) string {
	if ansi.StringWidth(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return ansi.Truncate(s, maxLen, "")
	}

	return ansi.Truncate(s, maxLen, "...")
}
