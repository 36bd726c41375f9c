package hargen

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"strings"

	"github.com/pb33f/txview/motor/model"
)

// BodyKind is the shape of a generated body.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyJSON
	BodyXML
	BodyHTML
	BodyBinary
	BodyForm
	BodyMultipart
	BodyText
	BodyBrokenJSON
)

func (k BodyKind) String() string {
	switch k {
	case BodyJSON:
		return "json"
	case BodyXML:
		return "xml"
	case BodyHTML:
		return "html"
	case BodyBinary:
		return "binary"
	case BodyForm:
		return "form"
	case BodyMultipart:
		return "multipart"
	case BodyText:
		return "text"
	case BodyBrokenJSON:
		return "broken-json"
	default:
		return "none"
	}
}

// MIMEType is the content type a body of this kind is labelled with.
func (k BodyKind) MIMEType() string {
	switch k {
	case BodyJSON, BodyBrokenJSON:
		return "application/json"
	case BodyXML:
		return "application/xml"
	case BodyHTML:
		return "text/html; charset=utf-8"
	case BodyBinary:
		return "application/octet-stream"
	case BodyForm:
		return "application/x-www-form-urlencoded"
	case BodyMultipart:
		return "multipart/form-data"
	case BodyText:
		return "text/plain"
	default:
		return ""
	}
}

// BodyGenerator creates bodies of every kind from dictionary words
type BodyGenerator struct {
	dict     *Dictionary
	maxDepth int
	maxNodes int
	rng      *rand.Rand
}

// NewBodyGenerator creates a new body generator
func NewBodyGenerator(dict *Dictionary, maxDepth, maxNodes int, rng *rand.Rand) *BodyGenerator {
	if maxDepth == 0 {
		maxDepth = 3
	}
	if maxNodes == 0 {
		maxNodes = 6
	}
	return &BodyGenerator{
		dict:     dict,
		maxDepth: maxDepth,
		maxNodes: maxNodes,
		rng:      rng,
	}
}

// Generate returns a body of the given kind. BodyNone yields an empty string.
func (bg *BodyGenerator) Generate(kind BodyKind) string {
	switch kind {
	case BodyJSON:
		content, _ := json.Marshal(bg.GenerateObject(0))
		return string(content)
	case BodyXML:
		return bg.generateXML()
	case BodyHTML:
		return bg.generateHTML()
	case BodyBinary:
		return bg.generateBinary(bg.rng.Intn(512) + 64)
	case BodyForm:
		return bg.generateForm()
	case BodyMultipart:
		return bg.generateMultipart()
	case BodyText:
		return bg.dict.Phrase(bg.rng.Intn(12)+3, bg.rng)
	case BodyBrokenJSON:
		content, _ := json.Marshal(bg.GenerateObject(0))
		// chop off the closing brace and some more
		return string(content[:len(content)/2])
	default:
		return ""
	}
}

// GenerateObject creates a random JSON object with dictionary words
func (bg *BodyGenerator) GenerateObject(depth int) map[string]interface{} {
	if depth >= bg.maxDepth {
		return map[string]interface{}{
			bg.dict.RandomWord(bg.rng): bg.dict.RandomWord(bg.rng),
		}
	}

	nodeCount := bg.rng.Intn(bg.maxNodes) + 1
	obj := make(map[string]interface{}, nodeCount)

	for i := 0; i < nodeCount; i++ {
		key := bg.dict.RandomWord(bg.rng)

		// 30% chance of nesting deeper if not at max depth
		switch {
		case depth < bg.maxDepth-1 && bg.rng.Float32() < 0.3:
			obj[key] = bg.GenerateObject(depth + 1)
		case bg.rng.Float32() < 0.2:
			obj[key] = bg.rng.Intn(10000)
		default:
			obj[key] = bg.dict.RandomWord(bg.rng)
		}
	}

	return obj
}

func (bg *BodyGenerator) generateXML() string {
	var b strings.Builder
	root := bg.dict.RandomWord(bg.rng)
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintf(&b, `<%s id="%d">`, root, bg.rng.Intn(1000))
	for i := 0; i < bg.rng.Intn(bg.maxNodes)+1; i++ {
		tag := bg.dict.RandomWord(bg.rng)
		fmt.Fprintf(&b, "<%s>%s</%s>", tag, bg.dict.RandomWord(bg.rng), tag)
	}
	fmt.Fprintf(&b, "</%s>", root)
	return b.String()
}

func (bg *BodyGenerator) generateHTML() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head>")
	fmt.Fprintf(&b, "<title>%s</title></head><body>", bg.dict.Phrase(2, bg.rng))
	fmt.Fprintf(&b, "<h1>%s</h1>", bg.dict.Phrase(3, bg.rng))
	for i := 0; i < bg.rng.Intn(3)+1; i++ {
		fmt.Fprintf(&b, "<p>%s</p>", bg.dict.Phrase(bg.rng.Intn(8)+4, bg.rng))
	}
	b.WriteString("</body></html>")
	return b.String()
}

// generateBinary stays below 0x80 so the bytes survive the trip through JSON unchanged.
func (bg *BodyGenerator) generateBinary(size int) string {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(bg.rng.Intn(0x80))
	}
	return string(data)
}

func (bg *BodyGenerator) generateForm() string {
	pairs := make([]string, 0, bg.maxNodes)
	for i := 0; i < bg.rng.Intn(bg.maxNodes)+1; i++ {
		key := bg.dict.RandomWord(bg.rng)
		value := bg.dict.Phrase(bg.rng.Intn(3)+1, bg.rng)
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	return strings.Join(pairs, "&")
}

// generateMultipart produces the pre-extracted part list the capture daemon stores in
// place of the raw multipart stream.
func (bg *BodyGenerator) generateMultipart() string {
	parts := []*model.FormPart{
		{
			Name:  bg.dict.RandomWord(bg.rng),
			Value: bg.dict.Phrase(2, bg.rng),
			Type:  model.FormPartField,
		},
		{
			Name: bg.dict.RandomWord(bg.rng),
			Files: []*model.FileRef{{
				Name:        bg.dict.RandomWord(bg.rng) + ".png",
				ContentType: "image/png",
				Size:        int64(bg.rng.Intn(1 << 20)),
			}},
			Type: model.FormPartFile,
		},
	}
	content, _ := json.Marshal(parts)
	return string(content)
}
