package submit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Encoding selects the request body format.
type Encoding string

const (
	// EncodingJSON sends application/json bodies.
	EncodingJSON Encoding = "json"
	// EncodingForm sends application/x-www-form-urlencoded bodies.
	EncodingForm Encoding = "form"
)

// maxErrorBody caps how much of a response body is read.
const maxErrorBody = 1 << 20

// ErrEndpointRequired is returned by NewHTTP when the endpoint is blank.
var ErrEndpointRequired = errors.New("submit: endpoint is required")

// Option configures an HTTPSubmitter.
type Option func(*HTTPSubmitter)

// WithClient overrides the HTTP client (http.DefaultClient by default).
func WithClient(client *http.Client) Option {
	return func(s *HTTPSubmitter) {
		if client != nil {
			s.client = client
		}
	}
}

// WithMethod overrides the request method (POST by default).
func WithMethod(method string) Option {
	return func(s *HTTPSubmitter) {
		if trimmed := strings.ToUpper(strings.TrimSpace(method)); trimmed != "" {
			s.method = trimmed
		}
	}
}

// WithHeader adds a request header.
func WithHeader(key, value string) Option {
	return func(s *HTTPSubmitter) {
		if strings.TrimSpace(key) != "" {
			s.headers.Set(key, value)
		}
	}
}

// WithEncoding selects the body encoding.
func WithEncoding(encoding Encoding) Option {
	return func(s *HTTPSubmitter) {
		if encoding != "" {
			s.encoding = encoding
		}
	}
}

// WithFields lets the submitter fold nested or enveloped error paths onto
// the form's field names.
func WithFields(fields model.Fields) Option {
	return func(s *HTTPSubmitter) {
		s.fields = fields
	}
}

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *HTTPSubmitter) {
		s.logger = logger
	}
}

// HTTPSubmitter sends flattened values to an HTTP endpoint.
//
// A 2xx response with an empty body, or a body without errors, is success.
// On a 2xx response only an "errors" envelope or flat keys naming known
// fields count as errors; any other body means success.
// Error bodies may be a flat {"field": "message"} object or an envelope
// {"errors": {"field": ["message", ...]}, "message": "..."}; envelope paths
// are mapped with validation.MapPayload. A non-2xx response without
// decodable errors becomes a form-level message naming the status.
type HTTPSubmitter struct {
	endpoint string
	method   string
	encoding Encoding
	headers  http.Header
	client   *http.Client
	fields   model.Fields
	logger   zerolog.Logger
}

// NewHTTP constructs a submitter for endpoint.
func NewHTTP(endpoint string, options ...Option) (*HTTPSubmitter, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("submit: parse endpoint: %w", err)
	}

	s := &HTTPSubmitter{
		endpoint: endpoint,
		method:   http.MethodPost,
		encoding: EncodingJSON,
		headers:  make(http.Header),
		client:   http.DefaultClient,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Func adapts the submitter to the controller's SubmitFunc.
func (s *HTTPSubmitter) Func() form.SubmitFunc {
	return s.Submit
}

// Submit sends values and decodes the response. Transport failures are
// returned as errors.
func (s *HTTPSubmitter) Submit(ctx context.Context, values form.Values) (validation.ErrorMap, error) {
	body, contentType, err := s.encode(values)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, s.method, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("submit: request: %w", err)
	}
	for key, vals := range s.headers {
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, fmt.Errorf("submit: read response: %w", err)
	}

	s.logger.Debug().
		Str("method", s.method).
		Str("endpoint", s.endpoint).
		Int("status", resp.StatusCode).
		Msg("submit: response received")

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	errs := s.decodeErrors(raw, s.knownFields(values), success)
	if success {
		return errs, nil
	}
	if !validation.HasErrors(errs) {
		errs = validation.FormLevel(fmt.Sprintf("Submission failed (%d %s)", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}
	return errs, nil
}

func (s *HTTPSubmitter) encode(values form.Values) ([]byte, string, error) {
	switch s.encoding {
	case EncodingForm:
		encoded := url.Values{}
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			encoded.Set(key, fmt.Sprint(values[key]))
		}
		return []byte(encoded.Encode()), "application/x-www-form-urlencoded", nil
	default:
		payload, err := json.Marshal(values)
		if err != nil {
			return nil, "", fmt.Errorf("submit: encode values: %w", err)
		}
		return payload, "application/json", nil
	}
}

type errorEnvelope struct {
	Errors  map[string]json.RawMessage `json:"errors"`
	Message string                     `json:"message"`
	Error   string                     `json:"error"`
}

// decodeErrors reads an error map from a response body. A successful
// response only reports errors through an explicit "errors" envelope or flat
// keys naming known fields, so bodies such as {"message":"Saved"} or
// {"status":"ok"} mean success.
func (s *HTTPSubmitter) decodeErrors(raw []byte, fields model.Fields, success bool) validation.ErrorMap {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return validation.ErrorMap{}
	}

	var envelope errorEnvelope
	if success {
		if err := json.Unmarshal(trimmed, &envelope); err == nil && len(envelope.Errors) > 0 {
			payload := make(map[string][]string, len(envelope.Errors))
			for key, value := range envelope.Errors {
				payload[key] = append(payload[key], decodeMessages(value)...)
			}
			return validation.MapPayload(fields, payload)
		}
	} else if err := json.Unmarshal(trimmed, &envelope); err == nil && (envelope.Errors != nil || envelope.Message != "" || envelope.Error != "") {
		payload := make(map[string][]string, len(envelope.Errors)+1)
		for key, value := range envelope.Errors {
			payload[key] = append(payload[key], decodeMessages(value)...)
		}
		for _, message := range []string{envelope.Message, envelope.Error} {
			if strings.TrimSpace(message) != "" && len(envelope.Errors) == 0 {
				payload[validation.FormErrorKey] = append(payload[validation.FormErrorKey], message)
			}
		}
		return validation.MapPayload(fields, payload)
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &flat); err != nil {
		s.logger.Warn().Err(err).Msg("submit: undecodable response body")
		return validation.ErrorMap{}
	}
	payload := make(map[string][]string, len(flat))
	for key, value := range flat {
		if success {
			if _, known := fields.Get(key); !known {
				continue
			}
		}
		payload[key] = decodeMessages(value)
	}
	return validation.MapPayload(fields, payload)
}

// knownFields returns the configured fields, or fields named after the
// submitted values when none were configured.
func (s *HTTPSubmitter) knownFields(values form.Values) model.Fields {
	if s.fields.Len() > 0 {
		return s.fields
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, model.Field{Name: name})
	}
	known, err := model.NewFields(fields...)
	if err != nil {
		return model.Fields{}
	}
	return known
}

func decodeMessages(raw json.RawMessage) []string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return nil
}
