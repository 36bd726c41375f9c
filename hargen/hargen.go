package hargen

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pb33f/harhar"
	"github.com/pb33f/txview/motor/model"
)

// GenerateOptions configures har generation
type GenerateOptions struct {
	EntryCount     int    // number of entries to generate
	DictionaryPath string // path to word dictionary (default: /usr/share/dict/words)
	MaxJSONDepth   int    // max nesting level (default: 3)
	MaxJSONNodes   int    // max nodes per level (default: 6)
	Seed           int64  // random seed for reproducibility (0 = use time)
}

// DefaultGenerateOptions provides sensible defaults
var DefaultGenerateOptions = GenerateOptions{
	EntryCount:     16,
	DictionaryPath: "/usr/share/dict/words",
	MaxJSONDepth:   3,
	MaxJSONNodes:   6,
	Seed:           0,
}

// Document is the root of a generated HTTP Archive.
type Document struct {
	Log Log `json:"log"`
}

// Log carries the generated entries.
type Log struct {
	Version string         `json:"version"`
	Creator harhar.Creator `json:"creator"`
	Entries []*Entry       `json:"entries"`
}

// Entry is a HAR entry plus the validation findings the capture daemon attaches under
// underscore-prefixed custom fields.
type Entry struct {
	HAR                harhar.Entry
	RequestValidation  []*model.Violation
	ResponseValidation []*model.Violation
}

// MarshalJSON writes the HAR entry with the custom fields spliced in beside it.
func (e Entry) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(e.HAR)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}

	if len(e.RequestValidation) > 0 {
		if fields["_requestValidation"], err = json.Marshal(e.RequestValidation); err != nil {
			return nil, err
		}
	}
	if len(e.ResponseValidation) > 0 {
		if fields["_responseValidation"], err = json.Marshal(e.ResponseValidation); err != nil {
			return nil, err
		}
	}

	return json.Marshal(fields)
}

// GenerateResult describes a har written to a temp file
type GenerateResult struct {
	HARFilePath  string
	TotalEntries int
}

func applyDefaults(opts GenerateOptions) GenerateOptions {
	if opts.DictionaryPath == "" {
		opts.DictionaryPath = DefaultGenerateOptions.DictionaryPath
	}
	if opts.MaxJSONDepth == 0 {
		opts.MaxJSONDepth = DefaultGenerateOptions.MaxJSONDepth
	}
	if opts.MaxJSONNodes == 0 {
		opts.MaxJSONNodes = DefaultGenerateOptions.MaxJSONNodes
	}
	return opts
}

// Generate creates a har in a temp file. The caller removes it.
func Generate(opts GenerateOptions) (*GenerateResult, error) {
	doc, err := GenerateInMemory(opts)
	if err != nil {
		return nil, err
	}

	tmpFile, err := os.CreateTemp("", "hargen-*.har")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmpFile.Close()

	if err := write(tmpFile, doc); err != nil {
		os.Remove(tmpFile.Name())
		return nil, err
	}

	return &GenerateResult{
		HARFilePath:  tmpFile.Name(),
		TotalEntries: len(doc.Log.Entries),
	}, nil
}

// GenerateInMemory creates a har structure without writing to disk. Body categories are
// cycled by entry index so even a handful of entries covers every rendering path.
func GenerateInMemory(opts GenerateOptions) (*Document, error) {
	// honor zero entrycount for empty har testing
	opts = applyDefaults(opts)

	// local rng, never the global one
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	dict, err := LoadDictionary(opts.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	bodyGen := NewBodyGenerator(dict, opts.MaxJSONDepth, opts.MaxJSONNodes, rng)
	entryGen := NewEntryGenerator(dict, bodyGen, rng)

	entries := make([]*Entry, 0, opts.EntryCount)
	for i := 0; i < opts.EntryCount; i++ {
		entries = append(entries, entryGen.GenerateEntry(i))
	}

	return &Document{
		Log: Log{
			Version: "1.2",
			Creator: harhar.Creator{
				Name:    "hargen",
				Version: "1.0.0",
			},
			Entries: entries,
		},
	}, nil
}

// GenerateToFile generates a har and writes it to a specific file path
func GenerateToFile(path string, opts GenerateOptions) (*Document, error) {
	doc, err := GenerateInMemory(opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := write(file, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func write(f *os.File, doc *Document) error {
	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to write har: %w", err)
	}
	return nil
}
