package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/pb33f/txview/motor"
	"github.com/pb33f/txview/motor/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatEntryRow(t *testing.T) {
	entry := &motor.Entry{
		Duration: 250,
		Transaction: &model.HttpTransaction{
			Request:            &model.HttpRequest{Method: "POST", URL: "https://api.example.com/pets?limit=1"},
			Response:           &model.HttpResponse{StatusCode: 201},
			ResponseValidation: []*model.Violation{{Message: "a"}, {Message: "b"}},
		},
	}

	assert.Equal(t, table.Row{"POST", "/pets?limit=1", "201", "✗ 2", "250ms"}, formatEntryRow(entry, 120))
}

func TestFormatEntryRow_Empty(t *testing.T) {
	entry := &motor.Entry{Transaction: &model.HttpTransaction{}}
	assert.Equal(t, table.Row{"---", "/", "---", "---", "---"}, formatEntryRow(entry, 120))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   float64
		want string
	}{
		{0, "---"},
		{0.5, "500μs"},
		{42, "42ms"},
		{2500, "2.5s"},
		{125000, "2m5s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.ms))
	}
}

func TestFormatURL_Truncates(t *testing.T) {
	long := "https://api.example.com/aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	got := formatURL(long, 0)
	assert.Len(t, got, minURLColumnWidth)
	assert.True(t, len(got) > 3 && got[len(got)-3:] == "...")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 5))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
	assert.Equal(t, "ab...", truncateString("abcdefgh", 5))
}

func TestTruncateString_MultiByte(t *testing.T) {
	got := truncateString("/café/ünïcødé/path", 8)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "/café...", got)

	// wide runes count as two columns
	assert.Equal(t, "世界...", truncateString("世界世界世界", 7))
}

func TestFormatEntryRow_StripsControlSequences(t *testing.T) {
	entry := &motor.Entry{
		Transaction: &model.HttpTransaction{
			Request: &model.HttpRequest{Method: "GET\x1b[2J", URL: "https://api.example.com/a\x1b]0;pwned\x07b"},
		},
	}

	row := formatEntryRow(entry, 120)
	assert.Equal(t, "GET", row[0])
	assert.NotContains(t, row[1], "\x1b")
	assert.NotContains(t, row[1], "pwned")
}
