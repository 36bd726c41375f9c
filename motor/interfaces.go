package motor

import (
	"context"
	"encoding/json"
	"io"
)

// TransactionReader pulls captured transactions out of an archive.
type TransactionReader interface {
	// Each streams entries in archive order, stopping at the first error from fn
	Each(ctx context.Context, r io.Reader, fn func(*Entry) error) error

	// Read collects every entry
	Read(ctx context.Context, r io.Reader) ([]*Entry, error)

	// ReadFile opens and reads an archive from disk
	ReadFile(ctx context.Context, path string) ([]*Entry, error)
}

// HARDecoder is the token stream the reader walks. *json.Decoder satisfies it, and a
// faster decoder can stand in without touching the reader.
type HARDecoder interface {
	// Token returns the next JSON token in the input stream
	Token() (json.Token, error)

	// Decode decodes the next JSON value into v
	Decode(v interface{}) error

	// More reports whether there is another element in the current array or object
	More() bool

	// InputOffset returns the input stream byte offset of the current decoder position
	InputOffset() int64
}
