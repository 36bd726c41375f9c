package inspect

import (
	"errors"
	"log/slog"

	"github.com/pb33f/txview/motor/model"
)

// key labels set on display collaborators at construction
const (
	CookieKeyLabel = "Cookie Name"
	QueryKeyLabel  = "Query Key"
)

// DataSink is a display collaborator fed with derived mappings. A nil mapping clears it.
type DataSink interface {
	SetData(data *model.OrderedMap)
}

// Sinks are the collaborators a presenter pushes derived mappings into. Nil sinks are
// skipped.
type Sinks struct {
	RequestHeaders  DataSink
	RequestCookies  DataSink
	RequestQuery    DataSink
	ResponseHeaders DataSink
	ResponseCookies DataSink
}

// PresenterState is either empty (nothing selected) or populated.
type PresenterState int

const (
	StateEmpty PresenterState = iota
	StatePopulated
)

func (s PresenterState) String() string {
	if s == StatePopulated {
		return "populated"
	}
	return "empty"
}

// TransactionView is the composed view of the current transaction for one render pass.
type TransactionView struct {
	Summary  Summary
	Request  *RequestView
	Response *ResponseView

	RequestViolations  []*model.Violation
	ResponseViolations []*model.Violation
}

// RequestView is nil on the TransactionView when the transaction carries no request.
type RequestView struct {
	Method string
	URL    string
	Body   *BodySection // nil when there is no body
}

// ResponseView is nil on the TransactionView when the transaction carries no response.
type ResponseView struct {
	StatusCode  int
	StatusText  string
	StatusClass StatusClass
	Body        *BodySection // nil when there is no body
}

// BodySection is one formatted body. Exactly one of Body and Err is set.
type BodySection struct {
	Category  ContentTypeCategory
	MediaType string
	Body      RenderableBody
	Err       error
}

// Presenter owns the current transaction and feeds its display collaborators. It is
// not safe for concurrent use; the caller and the render pass share one goroutine.
type Presenter struct {
	sinks     Sinks
	formatter *Formatter
	logger    *slog.Logger

	transaction *model.HttpTransaction
}

// NewPresenter creates an empty presenter.
func NewPresenter(sinks Sinks, formatter *Formatter, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Presenter{
		sinks:     sinks,
		formatter: formatter,
		logger:    logger,
	}
}

// SetTransaction replaces the current transaction. Nil returns the presenter to the
// empty state and clears every collaborator.
func (p *Presenter) SetTransaction(tx *model.HttpTransaction) {
	p.transaction = tx

	if tx == nil {
		p.clear()
		return
	}

	if tx.Request != nil {
		push(p.sinks.RequestHeaders, tx.Request.ExtractHeaders())
		push(p.sinks.RequestCookies, tx.Request.ExtractCookies())
		push(p.sinks.RequestQuery, tx.Request.ExtractQuery())
	} else {
		push(p.sinks.RequestHeaders, nil)
		push(p.sinks.RequestCookies, nil)
		push(p.sinks.RequestQuery, nil)
	}

	if tx.Response != nil {
		push(p.sinks.ResponseHeaders, tx.Response.ExtractHeaders())
		push(p.sinks.ResponseCookies, tx.Response.ExtractCookies())
	} else {
		push(p.sinks.ResponseHeaders, nil)
		push(p.sinks.ResponseCookies, nil)
	}
}

// Transaction returns the current transaction, nil when empty.
func (p *Presenter) Transaction() *model.HttpTransaction {
	return p.transaction
}

// State reports whether a transaction is selected.
func (p *Presenter) State() PresenterState {
	if p.transaction == nil {
		return StateEmpty
	}
	return StatePopulated
}

// View classifies and formats both bodies and summarises violations. It returns nil in
// the empty state. Body parse failures stay inside their BodySection.
func (p *Presenter) View() *TransactionView {
	tx := p.transaction
	if tx == nil {
		return nil
	}

	view := &TransactionView{
		Summary:            Summarize(tx.RequestValidation, tx.ResponseValidation),
		RequestViolations:  tx.RequestValidation,
		ResponseViolations: tx.ResponseValidation,
	}

	if req := tx.Request; req != nil {
		view.Request = &RequestView{
			Method: req.Method,
			URL:    req.URL,
			Body:   p.formatBody("request", req.Headers, req.ContentType(), req.Body),
		}
	}

	if resp := tx.Response; resp != nil {
		view.Response = &ResponseView{
			StatusCode:  resp.StatusCode,
			StatusText:  StatusDefinition(resp.StatusCode),
			StatusClass: ClassifyStatus(resp.StatusCode),
			Body:        p.formatBody("response", resp.Headers, resp.ContentType(), resp.Body),
		}
	}

	return view
}

func (p *Presenter) formatBody(side string, headers []model.NameValue, contentType, body string) *BodySection {
	if body == "" {
		return nil
	}

	category := Classify(headers)
	section := &BodySection{
		Category:  category,
		MediaType: category.MediaType(),
	}
	if section.MediaType == "" {
		section.MediaType = MediaType(contentType)
	}

	rendered, err := p.formatter.Format(category, body)
	if err != nil {
		var parseErr *BodyParseError
		if errors.As(err, &parseErr) {
			p.logger.Debug("unable to render body", "side", side, "category", category, "error", err)
		} else {
			p.logger.Warn("body formatting failed", "side", side, "category", category, "error", err)
		}
		section.Err = err
		return section
	}

	section.Body = rendered
	return section
}

func (p *Presenter) clear() {
	push(p.sinks.RequestHeaders, nil)
	push(p.sinks.RequestCookies, nil)
	push(p.sinks.RequestQuery, nil)
	push(p.sinks.ResponseHeaders, nil)
	push(p.sinks.ResponseCookies, nil)
}

func push(sink DataSink, data *model.OrderedMap) {
	if sink != nil {
		sink.SetData(data)
	}
}
