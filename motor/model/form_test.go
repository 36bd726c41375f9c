package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormPart_DeriveType(t *testing.T) {
	tests := []struct {
		name string
		part FormPart
		want string
	}{
		{"field", FormPart{Name: "f", Value: "x"}, FormPartField},
		{"file", FormPart{Name: "g", Files: []*FileRef{{Name: "a.png"}}}, FormPartFile},
		{"file wins", FormPart{Name: "h", Value: "x", Files: []*FileRef{{Name: "b.png"}}}, FormPartFile},
		{"untrusted type ignored", FormPart{Name: "i", Type: FormPartFile}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.part.DeriveType())
		})
	}
}

func TestFileRef_UnmarshalJSON(t *testing.T) {
	var parts []*FormPart
	err := json.Unmarshal([]byte(`[
		{"name":"g","files":["a.png"]},
		{"name":"h","files":[{"name":"b.pdf","contentType":"application/pdf","size":42}]}
	]`), &parts)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	assert.Equal(t, "a.png", parts[0].Files[0].Name)
	assert.Equal(t, &FileRef{Name: "b.pdf", ContentType: "application/pdf", Size: 42}, parts[1].Files[0])
}

func TestFileRef_UnmarshalJSONRejectsNumbers(t *testing.T) {
	var ref FileRef
	assert.Error(t, json.Unmarshal([]byte(`12`), &ref))
}

func TestParsePairs(t *testing.T) {
	pairs := ParsePairs("a=1&&b=x%3Dy&c&d=%zz")
	require.Len(t, pairs, 4)

	assert.Equal(t, "a", pairs[0].Key)
	assert.Equal(t, "1", pairs[0].Value)
	assert.True(t, pairs[0].HasValue)

	assert.Equal(t, "x=y", pairs[1].Value)

	assert.Equal(t, "c", pairs[2].Key)
	assert.False(t, pairs[2].HasValue)

	assert.Error(t, pairs[3].Err)
	assert.Equal(t, "%zz", pairs[3].RawValue)

	assert.Nil(t, ParsePairs(""))
}
