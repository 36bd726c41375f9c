package motor

import (
	"encoding/json"
	"io"
)

// *json.Decoder already satisfies HARDecoder.
var _ HARDecoder = (*json.Decoder)(nil)

func newHARDecoder(r io.Reader) HARDecoder {
	return json.NewDecoder(r)
}

// tokenWalker descends a document without materialising the parts it is not asked about.
type tokenWalker struct {
	dec HARDecoder
}

// expect consumes the next token and fails unless it is want.
func (w tokenWalker) expect(want json.Delim) error {
	token, err := w.dec.Token()
	if err != nil {
		return err
	}
	if token != want {
		return &unexpectedTokenError{want: want, got: token}
	}
	return nil
}

// fields consumes an object, calling fn for each key with the decoder positioned on its
// value. fn must consume that value. The closing brace is consumed too.
func (w tokenWalker) fields(fn func(key string) error) error {
	if err := w.expect('{'); err != nil {
		return err
	}
	for w.dec.More() {
		token, err := w.dec.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return &unexpectedTokenError{want: "object key", got: token}
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	_, err := w.dec.Token()
	return err
}

// skip consumes the next value of any shape by tracking delimiter depth.
func (w tokenWalker) skip() error {
	depth := 0
	for {
		token, err := w.dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := token.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}
