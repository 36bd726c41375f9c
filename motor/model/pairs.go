package model

import (
	"net/url"
	"strings"
)

// Pair is one key=value segment of an urlencoded string.
type Pair struct {
	RawKey   string
	RawValue string
	Key      string
	Value    string

	// HasValue is false when the segment carried no '='.
	HasValue bool

	// Err is set when the key or value could not be percent-decoded.
	Err error
}

// ParsePairs splits an urlencoded string on '&' and each segment once on the first '='.
// Key and value are decoded independently. Empty segments are dropped.
func ParsePairs(raw string) []Pair {
	if raw == "" {
		return nil
	}

	segments := strings.Split(raw, "&")
	pairs := make([]Pair, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}

		var p Pair
		p.RawKey, p.RawValue, p.HasValue = strings.Cut(segment, "=")

		key, err := url.QueryUnescape(p.RawKey)
		if err != nil {
			p.Err = err
			pairs = append(pairs, p)
			continue
		}
		value, err := url.QueryUnescape(p.RawValue)
		if err != nil {
			p.Err = err
			pairs = append(pairs, p)
			continue
		}

		p.Key, p.Value = key, value
		pairs = append(pairs, p)
	}
	return pairs
}
