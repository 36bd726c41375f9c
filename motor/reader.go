package motor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pb33f/harhar"
)

const (
	// MaxEntrySize is the maximum size of a single HAR entry that can be read.
	// Reading stops at the limit, an oversized entry is never buffered whole.
	MaxEntrySize = 100 * 1024 * 1024 // 100MB

	// separator and indentation allowed between the previous value and an entry
	entryLeadSlack = 64

	keyLog     = "log"
	keyEntries = "entries"
)

// HARReader streams HAR entries and converts them into transactions without holding the
// raw document in memory.
type HARReader struct {
	opts   ReaderOptions
	logger *slog.Logger
}

// NewHARReader creates a reader. A nil logger falls back to slog.Default().
func NewHARReader(opts ReaderOptions, logger *slog.Logger) *HARReader {
	if opts.MaxEntrySize <= 0 {
		opts.MaxEntrySize = MaxEntrySize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HARReader{opts: opts, logger: logger}
}

// ReadFile opens a HAR file and reads all of its entries.
func (r *HARReader) ReadFile(ctx context.Context, path string) ([]*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open har file: %w", err)
	}
	defer f.Close()

	entries, err := r.Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return entries, nil
}

// Read collects every entry from r.
func (r *HARReader) Read(ctx context.Context, reader io.Reader) ([]*Entry, error) {
	var entries []*Entry
	err := r.Each(ctx, reader, func(e *Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Each walks the document token by token down to log.entries and hands every converted
// entry to fn. Everything else in the document is skipped.
func (r *HARReader) Each(ctx context.Context, reader io.Reader, fn func(*Entry) error) error {
	limiter := &entryLimiter{r: reader, limit: noLimit}
	w := tokenWalker{dec: newHARDecoder(limiter)}

	err := w.fields(func(key string) error {
		if key != keyLog {
			return w.skip()
		}
		return w.fields(func(key string) error {
			if key != keyEntries {
				return w.skip()
			}
			return r.parseEntries(ctx, w, limiter, fn)
		})
	})
	if errors.Is(err, errEntryLimitReached) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("har document: %w", err)
	}
	return nil
}

func (r *HARReader) parseEntries(ctx context.Context, w tokenWalker, limiter *entryLimiter, fn func(*Entry) error) error {
	if err := w.expect('['); err != nil {
		return err
	}

	index := 0
	for w.dec.More() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if r.opts.MaxEntries > 0 && index >= r.opts.MaxEntries {
			r.logger.Debug("entry limit reached, ignoring the rest", "limit", r.opts.MaxEntries)
			return errEntryLimitReached
		}

		limiter.limit = w.dec.InputOffset() + r.opts.MaxEntrySize + entryLeadSlack
		var raw json.RawMessage
		err := w.dec.Decode(&raw)
		limiter.limit = noLimit
		if errors.Is(err, errEntryTooLarge) {
			return fmt.Errorf("entry %d exceeds maximum allowed size %d", index, r.opts.MaxEntrySize)
		}
		if err != nil {
			return fmt.Errorf("failed to decode entry %d: %w", index, err)
		}

		if int64(len(raw)) > r.opts.MaxEntrySize {
			return fmt.Errorf("entry %d size %d exceeds maximum allowed size %d", index, len(raw), r.opts.MaxEntrySize)
		}

		entry, err := decodeEntry(index, raw)
		if err != nil {
			return fmt.Errorf("failed to parse entry %d: %w", index, err)
		}

		if err := fn(entry); err != nil {
			return err
		}
		index++
	}

	_, err := w.dec.Token()
	return err
}

const noLimit = -1

var (
	errEntryTooLarge     = errors.New("entry too large")
	errEntryLimitReached = errors.New("entry limit reached")
)

// entryLimiter counts bytes pulled from the source and refuses to go past limit, an
// absolute stream offset. The reader arms it for each entry from the decoder's
// InputOffset.
type entryLimiter struct {
	r     io.Reader
	read  int64
	limit int64
}

func (l *entryLimiter) Read(p []byte) (int, error) {
	if l.limit != noLimit {
		remaining := l.limit - l.read
		if remaining <= 0 {
			return 0, errEntryTooLarge
		}
		if int64(len(p)) > remaining {
			p = p[:remaining]
		}
	}
	n, err := l.r.Read(p)
	l.read += int64(n)
	return n, err
}

// entryExtensions are the custom HAR fields the capture daemon writes next to each entry.
type entryExtensions struct {
	RequestValidation  json.RawMessage `json:"_requestValidation"`
	ResponseValidation json.RawMessage `json:"_responseValidation"`
	Response           struct {
		Content struct {
			Encoding string `json:"encoding"`
		} `json:"content"`
	} `json:"response"`
}

func decodeEntry(index int, raw json.RawMessage) (*Entry, error) {
	var har harhar.Entry
	if err := json.Unmarshal(raw, &har); err != nil {
		return nil, err
	}

	var ext entryExtensions
	if err := json.Unmarshal(raw, &ext); err != nil {
		return nil, err
	}

	entry := ConvertEntry(index, &har)
	if resp := entry.Transaction.Response; resp != nil {
		resp.Body = DecodeContent(resp.Body, ext.Response.Content.Encoding)
	}

	if err := decodeViolations(ext.RequestValidation, &entry.Transaction.RequestValidation); err != nil {
		return nil, fmt.Errorf("invalid request validation: %w", err)
	}
	if err := decodeViolations(ext.ResponseValidation, &entry.Transaction.ResponseValidation); err != nil {
		return nil, fmt.Errorf("invalid response validation: %w", err)
	}

	return entry, nil
}

func decodeViolations(raw json.RawMessage, into interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, into)
}
