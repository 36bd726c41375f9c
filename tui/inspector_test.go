package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pb33f/txview/inspect"
	"github.com/pb33f/txview/motor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInspector(t *testing.T) *Inspector {
	t.Helper()
	formatter, err := inspect.NewFormatter(inspect.FormatterOptions{
		HighlightFormat: inspect.HighlightTerminal256,
	})
	require.NoError(t, err)
	return NewInspector(formatter, nil)
}

func testTransaction() *model.HttpTransaction {
	return &model.HttpTransaction{
		Request: &model.HttpRequest{
			Method: "POST",
			URL:    "https://api.example.com/pets?limit=10",
			Headers: []model.NameValue{
				{Name: "Content-Type", Value: "application/x-www-form-urlencoded"},
				{Name: "Cookie", Value: "session=abc"},
			},
			Body: "name=fluffy%20cat&broken=%zz",
		},
		Response: &model.HttpResponse{
			StatusCode: 404,
			Headers:    []model.NameValue{{Name: "Content-Type", Value: "application/octet-stream"}},
			Body:       "\x00\x01\x02",
		},
		RequestValidation: []*model.Violation{{Message: "limit too large", SpecLine: 4, SpecCol: 2}},
	}
}

func TestInspector_EmptyState(t *testing.T) {
	i := newTestInspector(t)
	assert.Contains(t, i.Render(80), inspect.EmptyStateText)
}

func TestInspector_FeedsCollaborators(t *testing.T) {
	i := newTestInspector(t)
	i.SetTransaction(testTransaction())

	v, ok := i.requestCookies.Data().Get("session")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
	v, _ = i.requestQuery.Data().Get("limit")
	assert.Equal(t, "10", v)
	assert.Equal(t, 1, i.responseHeaders.Data().Len())
	assert.Zero(t, i.responseCookies.Data().Len())

	i.SetTransaction(nil)
	for _, kv := range []*KVView{i.requestHeaders, i.requestCookies, i.requestQuery, i.responseHeaders, i.responseCookies} {
		assert.Nil(t, kv.Data())
	}
}

func TestInspector_ViolationsTab(t *testing.T) {
	i := newTestInspector(t)
	i.SetTransaction(testTransaction())

	out := i.Render(80)
	assert.Contains(t, out, inspect.RequestViolationsHeading)
	assert.NotContains(t, out, inspect.ResponseViolationsHeading)
	assert.Contains(t, out, "limit too large")
	assert.Contains(t, out, "line 4, column 2")
}

func TestInspector_CompliantTransaction(t *testing.T) {
	i := newTestInspector(t)
	tx := testTransaction()
	tx.RequestValidation = nil
	i.SetTransaction(tx)

	assert.Contains(t, i.Render(80), inspect.CompliantText)
}

func TestInspector_RequestTab(t *testing.T) {
	i := newTestInspector(t)
	i.SetTransaction(testTransaction())
	i.SetTab(TabRequest)

	out := i.Render(100)
	assert.Contains(t, out, "https://api.example.com/pets?limit=10")
	assert.Contains(t, out, inspect.QueryKeyLabel)
	assert.Contains(t, out, inspect.CookieKeyLabel)
	assert.Contains(t, out, inspect.FormKeyLabel)
	assert.Contains(t, out, "fluffy cat")
	assert.Contains(t, out, "application/x-www-form-urlencoded")
	assert.Contains(t, out, "broken")
}

func TestInspector_ResponseTab(t *testing.T) {
	i := newTestInspector(t)
	i.SetTransaction(testTransaction())
	i.SetTab(TabResponse)

	out := i.Render(100)
	assert.Contains(t, out, "Not Found")
	assert.Contains(t, out, inspect.BinaryPlaceholderText)
	assert.NotContains(t, out, "\x01")
}

func TestInspector_UnrenderableBody(t *testing.T) {
	i := newTestInspector(t)
	tx := testTransaction()
	tx.Response.Headers = []model.NameValue{{Name: "Content-Type", Value: "application/json"}}
	tx.Response.Body = `{"broken":`
	i.SetTransaction(tx)
	i.SetTab(TabResponse)

	assert.Contains(t, i.Render(100), inspect.UnrenderableBodyText)
}

func TestInspector_AbsentSides(t *testing.T) {
	i := newTestInspector(t)
	i.SetTransaction(&model.HttpTransaction{})

	i.SetTab(TabRequest)
	assert.Contains(t, i.Render(80), "No request data")
	i.SetTab(TabResponse)
	assert.Contains(t, i.Render(80), "No response data")
}

func TestInspector_TabCycling(t *testing.T) {
	i := newTestInspector(t)
	assert.Equal(t, TabViolations, i.ActiveTab())

	i.NextTab()
	assert.Equal(t, TabRequest, i.ActiveTab())
	i.NextTab()
	i.NextTab()
	assert.Equal(t, TabViolations, i.ActiveTab())
	i.PrevTab()
	assert.Equal(t, TabResponse, i.ActiveTab())

	i.SetTab(Tab(42))
	assert.Equal(t, TabResponse, i.ActiveTab())
}

func TestInspector_StripsCapturedControlSequences(t *testing.T) {
	i := newTestInspector(t)
	i.SetTransaction(&model.HttpTransaction{
		Request: &model.HttpRequest{
			Method: "POST",
			URL:    "https://api.example.com/echo",
			Headers: []model.NameValue{
				{Name: "Content-Type", Value: "text/plain"},
				{Name: "X-Evil", Value: "\x1b[2Jboom"},
			},
			Body: "\x1b]0;pwned\x07\x1b[2Jhello",
		},
		Response: &model.HttpResponse{
			StatusCode: 200,
			Headers:    []model.NameValue{{Name: "Content-Type", Value: "application/xml"}},
			Body:       "<a>\x1b]52;c;aGk=\x07ok</a>",
		},
		RequestValidation: []*model.Violation{{Message: "bad\x1b]0;title\x07 header", Reason: "\x1b[2Jreason"}},
	})

	for _, tab := range []Tab{TabViolations, TabRequest, TabResponse} {
		i.SetTab(tab)
		out := i.Render(100)
		assert.NotContains(t, out, "\x1b]", tab.String())
		assert.NotContains(t, out, "\x1b[2J", tab.String())
		assert.NotContains(t, out, "\x07", tab.String())
	}

	i.SetTab(TabRequest)
	out := i.Render(100)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "pwned")

	i.SetTab(TabViolations)
	assert.Contains(t, i.Render(100), "bad header")
}

func TestInspector_TruncatesLongValues(t *testing.T) {
	i := newTestInspector(t)
	i.SetTransaction(&model.HttpTransaction{
		Request: &model.HttpRequest{
			Method:  "GET",
			URL:     "https://api.example.com/" + strings.Repeat("é", 200),
			Headers: []model.NameValue{{Name: "Accept", Value: "*/*"}},
		},
	})
	i.SetTab(TabRequest)

	out := i.Render(80)
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, strings.Repeat("é", 200))
	assert.True(t, utf8.ValidString(out))
}
