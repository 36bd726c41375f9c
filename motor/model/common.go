package model

import "strings"

// NameValue is a single header (or other raw name/value) as it was captured, in wire order.
type NameValue struct {
	// Name as captured, case preserved
	Name string `json:"name"`
	// Value as captured
	Value string `json:"value"`
}

// findValues returns every value for name, matched case-insensitively, in capture order.
func findValues(headers []NameValue, name string) []string {
	var values []string
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			values = append(values, h.Value)
		}
	}
	return values
}

// firstValue returns the first value for name (case-insensitive), or an empty string.
func firstValue(headers []NameValue, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
