package motor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/pb33f/txview/hargen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handWrittenHAR = `{
  "comment": "top level keys other than log are skipped",
  "log": {
    "version": "1.2",
    "creator": {"name": "wiretap", "version": "0.1"},
    "pages": [{"id": "page_1", "title": "ignored"}],
    "entries": [
      {
        "startedDateTime": "2025-06-01T12:00:00Z",
        "time": 12.5,
        "request": {
          "method": "POST",
          "url": "https://api.example.com/pets?limit=10&name=fluffy%20cat",
          "httpVersion": "HTTP/1.1",
          "headers": [{"name": "Accept", "value": "*/*"}],
          "queryString": [],
          "cookies": [{"name": "session", "value": "abc"}, {"name": "theme", "value": "dark"}],
          "postData": {"mimeType": "application/json", "text": "{\"name\":\"fluffy\"}"},
          "headersSize": -1,
          "bodySize": 17
        },
        "response": {
          "status": 200,
          "statusText": "OK",
          "httpVersion": "HTTP/1.1",
          "headers": [{"name": "Content-Type", "value": "text/plain"}],
          "cookies": [{"name": "id", "value": "1"}],
          "content": {"size": 5, "mimeType": "text/plain", "text": "aGVsbG8=", "encoding": "base64"},
          "redirectURL": "",
          "headersSize": -1,
          "bodySize": 5
        },
        "timings": {"send": 1, "wait": 10, "receive": 1.5},
        "_requestValidation": [
          {"message": "query parameter 'limit' is too large", "validationType": "parameter", "specLine": 12, "specColumn": 7}
        ]
      },
      {
        "startedDateTime": "2025-06-01T12:00:01Z",
        "time": 3,
        "request": {
          "method": "GET",
          "url": "https://api.example.com/owners",
          "httpVersion": "HTTP/1.1",
          "headers": [],
          "queryString": [],
          "cookies": [],
          "headersSize": -1,
          "bodySize": 0
        },
        "response": {
          "status": 500,
          "statusText": "Internal Server Error",
          "httpVersion": "HTTP/1.1",
          "headers": [],
          "cookies": [],
          "content": {"size": 0, "mimeType": "application/json", "text": "{}"},
          "redirectURL": "",
          "headersSize": -1,
          "bodySize": 2
        },
        "timings": {"send": 0, "wait": 3, "receive": 0},
        "_responseValidation": [
          {"message": "status 500 is not documented"},
          {"message": "response body does not match schema"}
        ]
      }
    ]
  }
}`

func newTestReader(opts ReaderOptions) *HARReader {
	return NewHARReader(opts, nil)
}

func TestHARReader_HandWritten(t *testing.T) {
	entries, err := newTestReader(DefaultReaderOptions()).Read(context.Background(), strings.NewReader(handWrittenHAR))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "POST", first.Method())
	assert.Equal(t, 200, first.StatusCode())
	assert.Equal(t, 12.5, first.Duration)
	assert.Equal(t, 2025, first.Start.Year())
	assert.Equal(t, 1, first.ViolationCount())

	req := first.Transaction.Request
	require.NotNil(t, req)
	assert.Equal(t, "application/json", req.ContentType())
	assert.Equal(t, `{"name":"fluffy"}`, req.Body)

	cookies := req.ExtractCookies()
	v, ok := cookies.Get("theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	query := req.ExtractQuery()
	v, _ = query.Get("name")
	assert.Equal(t, "fluffy cat", v)

	violation := first.Transaction.RequestValidation[0]
	assert.Equal(t, "parameter", violation.ValidationType)
	assert.Equal(t, 12, violation.SpecLine)
	assert.Equal(t, 7, violation.SpecCol)

	resp := first.Transaction.Response
	require.NotNil(t, resp)
	assert.Equal(t, "hello", resp.Body)
	v, _ = resp.ExtractCookies().Get("id")
	assert.Equal(t, "1", v)

	second := entries[1]
	assert.Equal(t, 1, second.Index)
	assert.Equal(t, "https://api.example.com/owners", second.URL())
	assert.Equal(t, "application/json", second.Transaction.Response.ContentType())
	assert.Len(t, second.Transaction.ResponseValidation, 2)
	assert.Empty(t, second.Transaction.RequestValidation)
}

func TestHARReader_GeneratedFile(t *testing.T) {
	path := generateTestHAR(t, 10, 42)

	entries, err := newTestReader(DefaultReaderOptions()).ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, entries, 10)

	for i, entry := range entries {
		assert.Equal(t, i, entry.Index)
		require.NotNil(t, entry.Transaction.Request)
		require.NotNil(t, entry.Transaction.Response)

		reqKind := hargen.RequestBodyKind(i)
		if reqKind != hargen.BodyNone {
			assert.Equal(t, reqKind.MIMEType(), entry.Transaction.Request.ContentType(), "entry %d", i)
		}
		assert.Equal(t, hargen.ResponseBodyKind(i).MIMEType(), entry.Transaction.Response.ContentType(), "entry %d", i)
	}

	assert.Zero(t, entries[1].ViolationCount())
	assert.NotZero(t, entries[0].ViolationCount())
}

func TestHARReader_MaxEntries(t *testing.T) {
	path := generateTestHAR(t, 10, 1)

	entries, err := newTestReader(ReaderOptions{MaxEntries: 3}).ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestHARReader_MaxEntrySize(t *testing.T) {
	_, err := newTestReader(ReaderOptions{MaxEntrySize: 64}).Read(context.Background(), strings.NewReader(handWrittenHAR))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum allowed size")
}

func TestHARReader_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestReader(DefaultReaderOptions()).Read(ctx, strings.NewReader(handWrittenHAR))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHARReader_CallbackErrorStops(t *testing.T) {
	stop := errors.New("stop")
	calls := 0

	err := newTestReader(DefaultReaderOptions()).Each(context.Background(), strings.NewReader(handWrittenHAR), func(*Entry) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestHARReader_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array root", `[]`},
		{"log is not an object", `{"log": []}`},
		{"entries is not an array", `{"log": {"entries": {}}}`},
		{"truncated", `{"log": {"entries": [{"request": `},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestReader(DefaultReaderOptions()).Read(context.Background(), strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestHARReader_NoEntries(t *testing.T) {
	entries, err := newTestReader(DefaultReaderOptions()).Read(context.Background(), strings.NewReader(`{"log": {"version": "1.2"}}`))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHARReader_MissingFile(t *testing.T) {
	_, err := newTestReader(DefaultReaderOptions()).ReadFile(context.Background(), "/nonexistent/file.har")
	assert.Error(t, err)
}

func TestHARReader_SkipsUnknownFields(t *testing.T) {
	input := `{
		"extra": {"a": [1, {"b": [2, 3]}], "c": null},
		"log": {
			"pages": [[], {"id": "p1"}],
			"creator": {"name": "x", "version": "1"},
			"entries": [{"request": {"method": "GET", "url": "https://api.example.com/a", "headers": []}}],
			"comment": "trailing"
		},
		"trailer": "done"
	}`

	entries, err := newTestReader(DefaultReaderOptions()).Read(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "GET", entries[0].Method())
}

func TestTokenWalker_Skip(t *testing.T) {
	w := tokenWalker{dec: newHARDecoder(strings.NewReader(`{"a": [1, {"b": {}}]} "next"`))}
	require.NoError(t, w.skip())

	token, err := w.dec.Token()
	require.NoError(t, err)
	assert.Equal(t, "next", token)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func oversizedHAR(bodySize int) string {
	return `{"log": {"version": "1.2", "entries": [{"request": {"method": "POST", "url": "https://api.example.com/upload", ` +
		`"postData": {"mimeType": "text/plain", "text": "` + strings.Repeat("a", bodySize) + `"}}}]}}`
}

func TestHARReader_MaxEntrySizeStopsReading(t *testing.T) {
	src := &countingReader{r: strings.NewReader(oversizedHAR(5 << 20))}

	_, err := newTestReader(ReaderOptions{MaxEntrySize: 1024}).Read(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum allowed size 1024")
	assert.Less(t, src.n, int64(4096), "the oversized entry must not be read in full")
}

func TestHARReader_EntryWithinLimit(t *testing.T) {
	input := oversizedHAR(512)
	entries, err := newTestReader(ReaderOptions{MaxEntrySize: 1024}).Read(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Transaction.Request.Body, 512)
}

func TestHARReader_MaxEntriesStopsEarly(t *testing.T) {
	// anything after the wanted entries is never looked at
	input := `{"log": {"entries": [
		{"request": {"method": "GET", "url": "https://api.example.com/a"}},
		{"request": {"method": "GET", "url": "https://api.example.com/b"}},
		@@@ not json`

	entries, err := newTestReader(ReaderOptions{MaxEntries: 2}).Read(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "https://api.example.com/b", entries[1].URL())
}

func TestHARReader_MaxEntriesReadsLess(t *testing.T) {
	path := generateTestHAR(t, 40, 7)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	src := &countingReader{r: bytes.NewReader(data)}
	entries, err := newTestReader(ReaderOptions{MaxEntries: 1}).Read(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Less(t, src.n, int64(len(data)))
}
