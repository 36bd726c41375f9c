package model

import (
	"encoding/json"
	"fmt"
)

const (
	FormPartField = "field"
	FormPartFile  = "file"
)

// FormPart is one named field or file segment of a multipart body, as extracted upstream.
type FormPart struct {
	Name  string     `json:"name"`
	Value string     `json:"value,omitempty"`
	Files []*FileRef `json:"files,omitempty"`

	// Type is never trusted from input; see DeriveType.
	Type string `json:"type,omitempty"`
}

// DeriveType works out the part type from its content. A non-empty value makes a field,
// non-empty files make a file, and files win when both are present.
func (p *FormPart) DeriveType() string {
	var t string
	if len(p.Value) > 0 {
		t = FormPartField
	}
	if len(p.Files) > 0 {
		t = FormPartFile
	}
	return t
}

// FileRef describes an uploaded file within a multipart part.
type FileRef struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// UnmarshalJSON accepts either a bare file name string or an object.
func (f *FileRef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*f = FileRef{Name: name}
		return nil
	}

	type fileRef FileRef
	var ref fileRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return fmt.Errorf("file reference must be a string or object: %w", err)
	}
	*f = FileRef(ref)
	return nil
}
