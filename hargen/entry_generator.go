package hargen

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/pb33f/harhar"
	"github.com/pb33f/txview/motor/model"
)

var (
	// first entry starts here so runs with the same seed are byte-identical
	baseTime = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	requestBodies = []BodyKind{
		BodyNone, BodyJSON, BodyXML, BodyForm, BodyMultipart, BodyHTML,
		BodyText, BodyBinary, BodyBrokenJSON,
	}
	responseBodies = []BodyKind{
		BodyJSON, BodyXML, BodyHTML, BodyBinary, BodyText, BodyBrokenJSON,
		BodyForm, BodyMultipart,
	}
)

// RequestBodyKind reports the request body kind generated for an entry index.
func RequestBodyKind(index int) BodyKind {
	return requestBodies[index%len(requestBodies)]
}

// ResponseBodyKind reports the response body kind generated for an entry index.
func ResponseBodyKind(index int) BodyKind {
	return responseBodies[index%len(responseBodies)]
}

// EntryGenerator creates HAR entries with attached validation findings
type EntryGenerator struct {
	dict    *Dictionary
	bodyGen *BodyGenerator
	rng     *rand.Rand
}

// NewEntryGenerator creates a new entry generator
func NewEntryGenerator(dict *Dictionary, bodyGen *BodyGenerator, rng *rand.Rand) *EntryGenerator {
	return &EntryGenerator{
		dict:    dict,
		bodyGen: bodyGen,
		rng:     rng,
	}
}

// GenerateEntry creates a single entry. Every third entry carries request violations and
// every other one response violations, so index 1 is always compliant.
func (eg *EntryGenerator) GenerateEntry(index int) *Entry {
	entry := &Entry{
		HAR: harhar.Entry{
			Start:      baseTime.Add(time.Duration(index) * time.Second).Format(time.RFC3339),
			Time:       float64(eg.rng.Intn(1000)) + eg.rng.Float64(),
			Request:    eg.generateRequest(RequestBodyKind(index)),
			Response:   eg.generateResponse(ResponseBodyKind(index)),
			ServerIP:   eg.generateIP(),
			Connection: fmt.Sprintf("%d", eg.rng.Intn(65535)),
		},
	}

	if index%3 == 0 {
		entry.RequestValidation = eg.generateViolations(eg.rng.Intn(2)+1, "parameter")
	}
	if index%2 == 0 {
		entry.ResponseValidation = eg.generateViolations(eg.rng.Intn(3)+1, "response")
	}

	return entry
}

func (eg *EntryGenerator) generateRequest(kind BodyKind) harhar.Request {
	method := http.MethodGet
	if kind != BodyNone {
		methods := []string{http.MethodPost, http.MethodPut, http.MethodPatch}
		method = methods[eg.rng.Intn(len(methods))]
	}

	query := eg.generateQueryParams(eg.rng.Intn(4))
	headers := []harhar.NameValuePair{
		{Name: "Accept", Value: "*/*"},
		{Name: "User-Agent", Value: "Mozilla/5.0 (compatible; hargen/1.0)"},
	}
	if kind != BodyNone {
		headers = append(headers, harhar.NameValuePair{Name: "Content-Type", Value: kind.MIMEType()})
	}

	body := eg.bodyGen.Generate(kind)
	return harhar.Request{
		Method:      method,
		URL:         eg.generateURL(query),
		HTTPVersion: "HTTP/1.1",
		Headers:     headers,
		QueryParams: query,
		Cookies:     eg.generateCookies(eg.rng.Intn(3)),
		Body: harhar.BodyType{
			MIMEType: kind.MIMEType(),
			Content:  body,
		},
		HeadersSize: eg.rng.Intn(500) + 200,
		BodySize:    len(body),
	}
}

func (eg *EntryGenerator) generateResponse(kind BodyKind) harhar.Response {
	status := eg.randomStatus()
	body := eg.bodyGen.Generate(kind)
	return harhar.Response{
		StatusCode:  status,
		StatusText:  http.StatusText(status),
		HTTPVersion: "HTTP/1.1",
		Headers: []harhar.NameValuePair{
			{Name: "Content-Type", Value: kind.MIMEType()},
			{Name: "Cache-Control", Value: "no-cache"},
			{Name: "Vary", Value: "Accept"},
			{Name: "Vary", Value: "Origin"},
		},
		Cookies: eg.generateCookies(eg.rng.Intn(2)),
		Body: harhar.BodyResponseType{
			Size:     len(body),
			MIMEType: kind.MIMEType(),
			Content:  body,
		},
		HeadersSize: eg.rng.Intn(700) + 300,
		BodySize:    len(body),
	}
}

func (eg *EntryGenerator) randomStatus() int {
	statuses := []int{200, 201, 204, 301, 302, 400, 401, 403, 404, 500, 502, 503}
	return statuses[eg.rng.Intn(len(statuses))]
}

func (eg *EntryGenerator) generateURL(query []harhar.NameValuePair) string {
	domains := []string{"api.example.com", "service.test.org", "app.company.io"}
	u := url.URL{
		Scheme: "https",
		Host:   domains[eg.rng.Intn(len(domains))],
	}

	for i := 0; i < eg.rng.Intn(3)+1; i++ {
		u.Path += "/" + eg.dict.RandomWord(eg.rng)
	}

	values := url.Values{}
	for _, q := range query {
		values.Add(q.Name, q.Value)
	}
	u.RawQuery = values.Encode()

	return u.String()
}

func (eg *EntryGenerator) generateIP() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		eg.rng.Intn(256), eg.rng.Intn(256), eg.rng.Intn(256), eg.rng.Intn(256))
}

func (eg *EntryGenerator) generateQueryParams(count int) []harhar.NameValuePair {
	params := make([]harhar.NameValuePair, count)
	for i := range params {
		params[i] = harhar.NameValuePair{
			Name:  eg.dict.RandomWord(eg.rng),
			Value: eg.dict.Phrase(eg.rng.Intn(2)+1, eg.rng),
		}
	}
	return params
}

func (eg *EntryGenerator) generateCookies(count int) []harhar.Cookie {
	cookies := make([]harhar.Cookie, count)
	for i := range cookies {
		cookies[i] = harhar.Cookie{
			Name:  eg.dict.RandomWord(eg.rng),
			Value: eg.dict.RandomWord(eg.rng),
		}
	}
	return cookies
}

var violationTypes = map[string][]string{
	"parameter": {"missing", "schema", "query"},
	"response":  {"schema", "status", "content-type"},
}

func (eg *EntryGenerator) generateViolations(count int, validationType string) []*model.Violation {
	subTypes := violationTypes[validationType]
	violations := make([]*model.Violation, count)
	for i := range violations {
		subject := eg.dict.RandomWord(eg.rng)
		violations[i] = &model.Violation{
			Message:           fmt.Sprintf("%s '%s' failed validation", validationType, subject),
			Reason:            fmt.Sprintf("the value of '%s' does not match the schema", subject),
			ValidationType:    validationType,
			ValidationSubType: subTypes[eg.rng.Intn(len(subTypes))],
			HowToFix:          fmt.Sprintf("check the definition of '%s' in the contract", subject),
			SpecLine:          eg.rng.Intn(400) + 1,
			SpecCol:           eg.rng.Intn(40) + 1,
		}
	}
	return violations
}
