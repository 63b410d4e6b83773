package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/zlog"
)

// DefaultBaseURL is used when the configuration carries no backend address.
const DefaultBaseURL = "http://localhost:3000/api"

// Reporter receives every error this package is about to return. Reporting
// is best-effort: implementations must not block and cannot change the
// error handed back to the caller.
type Reporter interface {
	ReportAPIError(err error, method, endpoint string, status int)
}

// Config carries the shared wiring for both client planes.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
	Reporter   Reporter
}

type client struct {
	baseURL  string
	httpc    *http.Client
	log      *zerolog.Logger
	reporter Reporter
}

func newClient(cfg Config) *client {
	c := &client{
		baseURL:  cfg.BaseURL,
		httpc:    cfg.HTTPClient,
		log:      cfg.Logger,
		reporter: cfg.Reporter,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpc == nil {
		c.httpc = http.DefaultClient
	}
	if c.log == nil {
		c.log = &zlog.Logger
	}
	return c
}

type request struct {
	method      string
	endpoint    string
	body        io.Reader
	contentType string
	headers     map[string]string
	token       string
}

// do performs one HTTP call and classifies the outcome. On success it hands
// the raw body back; envelope unwrapping is endpoint-specific and stays with
// the operation methods.
func (c *client) do(ctx context.Context, rq request) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, rq.method, c.baseURL+rq.endpoint, rq.body)
	if err != nil {
		return nil, c.fail(rq, &APIError{Message: MsgNetworkError, Status: 0, Body: err.Error()})
	}

	if rq.contentType != "" {
		req.Header.Set("Content-Type", rq.contentType)
	} else {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range rq.headers {
		req.Header.Set(k, v)
	}
	if rq.token != "" {
		req.Header.Set("Authorization", "Bearer "+rq.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, c.fail(rq, &APIError{Message: MsgNetworkError, Status: 0, Body: err.Error()})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(rq, &APIError{Message: MsgNetworkError, Status: 0, Body: err.Error()})
	}

	if err := classify(resp.StatusCode, raw); err != nil {
		return nil, c.fail(rq, err)
	}
	return raw, nil
}

// doJSON marshals payload and performs a JSON call.
func (c *client) doJSON(ctx context.Context, method, endpoint string, payload any, token string) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("encode request body: %v", err), Status: 0}
		}
		body = bytes.NewReader(buf)
	}
	return c.do(ctx, request{method: method, endpoint: endpoint, body: body, token: token})
}

// fail reports the error and returns it unchanged.
func (c *client) fail(rq request, err error) error {
	status := 0
	if apiErr, ok := AsAPIError(err); ok {
		status = apiErr.Status
	}
	c.log.Error().
		Str("method", rq.method).
		Str("endpoint", rq.endpoint).
		Int("status", status).
		Msg(err.Error())
	if c.reporter != nil {
		c.reporter.ReportAPIError(err, rq.method, rq.endpoint, status)
	}
	return err
}

// classify maps an HTTP status to the error taxonomy. Order matters: 401
// and 403 take precedence over the generic non-2xx case.
func classify(status int, raw []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return newAuthenticationError()
	case status == http.StatusForbidden:
		return newAuthorizationError()
	case status < 200 || status > 299:
		return &APIError{
			Message: errorMessage(status, raw),
			Status:  status,
			Body:    decodeBody(raw),
		}
	}
	return nil
}

// errorMessage digs the human-readable message out of a failing body. The
// backend is inconsistent: {error:{message}}, {message}, a plain JSON
// string, or nothing useful at all.
func errorMessage(status int, raw []byte) string {
	var envelope struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != nil && envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}

func decodeBody(raw []byte) any {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return string(raw)
	}
	return body
}

// unwrapData strips the backend's usual {success, data} envelope, leaving a
// bare payload untouched.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return raw
}

// decode parses a success body into out. A body the backend promised but
// cannot be parsed is treated like a transport failure (status 0).
func (c *client) decode(method, endpoint string, raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return c.fail(
			request{method: method, endpoint: endpoint},
			&APIError{Message: "malformed response body", Status: 0, Body: string(raw)},
		)
	}
	return nil
}
