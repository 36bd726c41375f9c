package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/stretchr/testify/assert"
)

func newTestTable(rows []table.Row, cursor int) table.Model {
	columns := []table.Column{
		{Title: "Method", Width: 10},
		{Title: "URL", Width: 30},
		{Title: "Status", Width: 10},
		{Title: "Violations", Width: 12},
		{Title: "Duration", Width: 10},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithWidth(80),
	)
	tbl = ApplyTableStyles(tbl)
	tbl.SetCursor(cursor)
	return tbl
}

func TestColorizeTransactionTable_SkipsHeader(t *testing.T) {
	rows := []table.Row{
		{"GET", "/api/users", "200", "---", "100ms"},
		{"DELETE", "/api/items/123", "404", "✗ 2", "50ms"},
	}
	tbl := newTestTable(rows, 0)

	colorized := ColorizeTransactionTable(tbl.View(), 0, rows)
	lines := strings.Split(colorized, "\n")
	assert.Equal(t, strings.Split(tbl.View(), "\n")[0], lines[0])
}

const testSelectedMarker = "\x1b[1;38;5;201;48;2;42;26;42m"

func TestColorizeTransactionTable_Duplicates(t *testing.T) {
	rows := []table.Row{
		{"POST", "/api/users", "201", "---", "100ms"},
		{"POST", "/api/users", "201", "---", "100ms"},
		{"GET", "/api/products", "200", "---", "50ms"},
	}
	view := strings.Join([]string{
		" Method  URL  Status  Violations  Duration ",
		testSelectedMarker + " POST  /api/users  201  ---  100ms \x1b[0m",
		" POST  /api/users  201  ---  100ms ",
		" GET  /api/products  200  ---  50ms ",
	}, "\n")

	lines := strings.Split(ColorizeTransactionTable(view, 0, rows), "\n")
	assert.NotContains(t, lines[1], renderedPOST)
	// the duplicate of the selected row is still colorized
	assert.Contains(t, lines[2], renderedPOST)
	assert.Contains(t, lines[3], renderedGET)
}

func TestColorizeTransactionTable_ContentFallback(t *testing.T) {
	rows := []table.Row{
		{"GET", "/api/products", "200", "---", "50ms"},
		{"DELETE", "/api/items/1", "404", "✗ 1", "75ms"},
	}
	view := strings.Join([]string{
		" Method  URL  Status  Violations  Duration ",
		" GET  /api/products  200  ---  50ms ",
		" DELETE  /api/items/1  404  ✗ 1  75ms ",
	}, "\n")

	lines := strings.Split(ColorizeTransactionTable(view, 1, rows), "\n")
	assert.Contains(t, lines[1], renderedGET)
	assert.Equal(t, " DELETE  /api/items/1  404  ✗ 1  75ms ", lines[2])
}

func TestColorizeHTTPMethods(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{" GET /a ", " " + renderedGET + " /a "},
		{" POST /a ", " " + renderedPOST + " /a "},
		{" PUT /a ", " " + renderedPUT + " /a "},
		{" DELETE /a ", " " + renderedDELETE + " /a "},
		{" PATCH /a ", " " + renderedPATCH + " /a "},
		{" QUERY /a ", " " + renderedQUERY + " /a "},
		{" /GETTER ", " /GETTER "},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, colorizeHTTPMethods(tt.line))
	}
}

func TestColorizeStatusCodes(t *testing.T) {
	assert.Equal(t, " /a 200 x", colorizeStatusCodes(" /a 200 x"))
	assert.Equal(t, " /a "+StyleStatus4xx.Render("404")+" x", colorizeStatusCodes(" /a 404 x"))
	assert.Equal(t, " /a "+StyleStatus5xx.Render("503")+" x", colorizeStatusCodes(" /a 503 x"))
	assert.Equal(t, "no status here", colorizeStatusCodes("no status here"))
}

func TestColorizeViolations(t *testing.T) {
	assert.Equal(t, " "+renderedViolation+" 3 ", colorizeViolations(" ✗ 3 "))
	assert.Equal(t, " --- ", colorizeViolations(" --- "))
}

func TestColorizeDurations(t *testing.T) {
	assert.Equal(t, " x "+StyleDurationFaint.Render("150ms")+"  ", colorizeDurations(" x 150ms  "))
	assert.Equal(t, " x /api/users", colorizeDurations(" x /api/users"))
}

func TestIsDuration(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"150ms", true},
		{"2.5s", true},
		{"3m", true},
		{"1h", true},
		{"120μs", true},
		{"", false},
		{"ms", false},
		{"/api/users", false},
		{"5u7hmsls", false},
		{"1.2.3s", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuration(tt.input))
		})
	}
}
