package hargen

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInMemory_Deterministic(t *testing.T) {
	opts := GenerateOptions{EntryCount: 12, Seed: 42, DictionaryPath: "/nonexistent"}

	first, err := GenerateInMemory(opts)
	require.NoError(t, err)
	second, err := GenerateInMemory(opts)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGenerateInMemory_ZeroEntries(t *testing.T) {
	doc, err := GenerateInMemory(GenerateOptions{EntryCount: 0, Seed: 1, DictionaryPath: "/nonexistent"})
	require.NoError(t, err)
	assert.Empty(t, doc.Log.Entries)
	assert.Equal(t, "1.2", doc.Log.Version)
	assert.Equal(t, "hargen", doc.Log.Creator.Name)
}

func TestGenerateInMemory_CyclesBodyKinds(t *testing.T) {
	doc, err := GenerateInMemory(GenerateOptions{EntryCount: len(requestBodies), Seed: 7, DictionaryPath: "/nonexistent"})
	require.NoError(t, err)

	for i, entry := range doc.Log.Entries {
		kind := RequestBodyKind(i)
		assert.Equal(t, kind.MIMEType(), entry.HAR.Request.Body.MIMEType, "entry %d", i)
		if kind == BodyNone {
			assert.Empty(t, entry.HAR.Request.Body.Content)
			assert.Equal(t, "GET", entry.HAR.Request.Method)
		} else {
			assert.NotEmpty(t, entry.HAR.Request.Body.Content)
		}
		assert.Equal(t, ResponseBodyKind(i).MIMEType(), entry.HAR.Response.Body.MIMEType)
	}
}

func TestGenerateInMemory_Violations(t *testing.T) {
	doc, err := GenerateInMemory(GenerateOptions{EntryCount: 6, Seed: 3, DictionaryPath: "/nonexistent"})
	require.NoError(t, err)

	tests := []struct {
		index    int
		request  bool
		response bool
	}{
		{0, true, true},
		{1, false, false},
		{2, false, true},
		{3, true, false},
	}

	for _, tt := range tests {
		entry := doc.Log.Entries[tt.index]
		assert.Equal(t, tt.request, len(entry.RequestValidation) > 0, "entry %d request", tt.index)
		assert.Equal(t, tt.response, len(entry.ResponseValidation) > 0, "entry %d response", tt.index)
	}
}

func TestEntry_MarshalJSON(t *testing.T) {
	doc, err := GenerateInMemory(GenerateOptions{EntryCount: 2, Seed: 5, DictionaryPath: "/nonexistent"})
	require.NoError(t, err)

	raw, err := json.Marshal(doc.Log.Entries[0])
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "request")
	assert.Contains(t, fields, "response")
	assert.Contains(t, fields, "_requestValidation")
	assert.Contains(t, fields, "_responseValidation")

	raw, err = json.Marshal(doc.Log.Entries[1])
	require.NoError(t, err)
	fields = nil
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "_requestValidation")
	assert.NotContains(t, fields, "_responseValidation")
}

func TestGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.har")

	doc, err := GenerateToFile(path, GenerateOptions{EntryCount: 3, Seed: 9, DictionaryPath: "/nonexistent"})
	require.NoError(t, err)
	assert.Len(t, doc.Log.Entries, 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed struct {
		Log struct {
			Entries []json.RawMessage `json:"entries"`
		} `json:"log"`
	}
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Len(t, parsed.Log.Entries, 3)
}

func TestGenerate_TempFile(t *testing.T) {
	result, err := Generate(GenerateOptions{EntryCount: 2, Seed: 11, DictionaryPath: "/nonexistent"})
	require.NoError(t, err)
	defer os.Remove(result.HARFilePath)

	assert.Equal(t, 2, result.TotalEntries)
	assert.FileExists(t, result.HARFilePath)
}

func TestLoadDictionary_Fallback(t *testing.T) {
	dict, err := LoadDictionary("/nonexistent/words")
	require.NoError(t, err)
	assert.Equal(t, len(fallbackWords), dict.Size())
}

func TestLoadDictionary_FiltersWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words")
	require.NoError(t, os.WriteFile(path, []byte("Cat\nox\nit's\nSummit\nextraordinarily\n"), 0644))

	dict, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, 2, dict.Size())
}

func TestLoadDictionary_NoWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0644))

	_, err := LoadDictionary(path)
	assert.Error(t, err)
}
