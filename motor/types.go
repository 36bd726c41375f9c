package motor

import (
	"fmt"
	"time"

	"github.com/pb33f/txview/motor/model"
)

// Entry is one archived transaction plus the archive metadata the list view shows.
type Entry struct {
	Index       int
	Start       time.Time
	Duration    float64 // milliseconds
	Transaction *model.HttpTransaction
}

// Method returns the request method, empty when the entry has no request.
func (e *Entry) Method() string {
	if e.Transaction == nil || e.Transaction.Request == nil {
		return ""
	}
	return e.Transaction.Request.Method
}

// URL returns the request URL, empty when the entry has no request.
func (e *Entry) URL() string {
	if e.Transaction == nil || e.Transaction.Request == nil {
		return ""
	}
	return e.Transaction.Request.URL
}

// StatusCode returns the response code, zero when the entry has no response.
func (e *Entry) StatusCode() int {
	if e.Transaction == nil || e.Transaction.Response == nil {
		return 0
	}
	return e.Transaction.Response.StatusCode
}

// ViolationCount totals request and response findings.
func (e *Entry) ViolationCount() int {
	if e.Transaction == nil {
		return 0
	}
	return len(e.Transaction.RequestValidation) + len(e.Transaction.ResponseValidation)
}

// ReaderOptions bounds what the reader accepts.
type ReaderOptions struct {
	// MaxEntrySize is the largest single entry, in bytes, the reader will decode.
	MaxEntrySize int64
	// MaxEntries stops reading after this many entries, 0 means no limit.
	MaxEntries int
}

func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		MaxEntrySize: MaxEntrySize,
		MaxEntries:   0,
	}
}

type unexpectedTokenError struct {
	want interface{}
	got  interface{}
}

func (e *unexpectedTokenError) Error() string {
	return fmt.Sprintf("expected %v, got %v", e.want, e.got)
}
