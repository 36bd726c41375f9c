package inspect

import "github.com/pb33f/txview/motor/model"

// Summary drives the violations tab: badge, empty state and section chrome.
type Summary struct {
	Total        int
	BadgeVisible bool
	EmptyState   bool

	// RequestHeading and ResponseHeading are set when the matching list is non-empty.
	RequestHeading  bool
	ResponseHeading bool

	// Separator sits between the two lists and only shows when both have entries.
	Separator bool
}

// Summarize counts request and response violations. Nil lists count as empty.
func Summarize(requestViolations, responseViolations []*model.Violation) Summary {
	req, resp := len(requestViolations), len(responseViolations)
	total := req + resp

	return Summary{
		Total:           total,
		BadgeVisible:    total > 0,
		EmptyState:      total <= 0,
		RequestHeading:  req > 0,
		ResponseHeading: resp > 0,
		Separator:       req > 0 && resp > 0,
	}
}
