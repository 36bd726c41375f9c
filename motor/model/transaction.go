package model

// HttpTransaction is one captured request/response pair plus the validation findings
// that were computed for it. Values are treated as immutable once built.
type HttpTransaction struct {
	Request  *HttpRequest  `json:"httpRequest,omitempty"`
	Response *HttpResponse `json:"httpResponse,omitempty"`

	RequestValidation  []*Violation `json:"requestValidation,omitempty"`
	ResponseValidation []*Violation `json:"responseValidation,omitempty"`
}

// Violation is a single protocol or schema compliance finding attached to a request or
// response. The shape follows the validation error export of the capture daemon.
type Violation struct {
	Message           string `json:"message"`
	Reason            string `json:"reason,omitempty"`
	ValidationType    string `json:"validationType,omitempty"`
	ValidationSubType string `json:"validationSubType,omitempty"`
	HowToFix          string `json:"howToFix,omitempty"`
	SpecLine          int    `json:"specLine,omitempty"`
	SpecCol           int    `json:"specColumn,omitempty"`
}
