package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// Response is the tagged envelope every backend JSON response is wrapped in:
// a success carries `data`, an error carries `error` (either a bare message
// string or a structured object).
type Response[T any] struct {
	Data  *T              `json:"data"`
	Error json.RawMessage `json:"error"`
}

// Get issues a GET for the given path and unwraps the response envelope.
// An HTTP 404 yields (nil, nil): absence of an idempotent lookup's resource
// is a normal result, never an error. Every other failure mode is reported
// as a *ClientError.
func Get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	u := c.urlFor(path)

	c.logger.Debug().Str("method", http.MethodGet).Str("url", u).Msg("Dispatching API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, sendFailure(c, http.MethodGet, u, "", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, sendFailure(c, http.MethodGet, u, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, sendFailure(c, http.MethodGet, u, "", errors.Wrap(err, "error reading response body"))
	}

	return parseEnvelope[T](c, http.MethodGet, u, "", resp.StatusCode, text)
}

// Put issues a PUT with a JSON-serialized body and unwraps the response
// envelope. Unlike Get there is no absence case: a failed PUT is always an
// error, and a 2xx with an empty body is a success without a payload. The
// outgoing body is captured up front so failure events can carry it without
// re-reading the request.
func Put[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	u := c.urlFor(path)

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, sendFailure(c, http.MethodPut, u, "", errors.Wrap(err, "failed to encode request body"))
	}
	reqBody := string(encoded)

	c.logger.Debug().Str("method", http.MethodPut).Str("url", u).Str("body", reqBody).Msg("Dispatching API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(encoded))
	if err != nil {
		return nil, sendFailure(c, http.MethodPut, u, reqBody, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, sendFailure(c, http.MethodPut, u, reqBody, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, sendFailure(c, http.MethodPut, u, reqBody, errors.Wrap(err, "error reading response body"))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && len(bytes.TrimSpace(text)) == 0 {
		return nil, nil
	}

	return parseEnvelope[T](c, http.MethodPut, u, reqBody, resp.StatusCode, text)
}

func sendFailure(c *Client, method, u, reqBody string, err error) *ClientError {
	evt := c.logger.Warn().Str("method", method).Str("url", u).Err(err)
	if reqBody != "" {
		evt = evt.Str("body", reqBody)
	}
	evt.Msg("Failed to send request")

	return &ClientError{Kind: KindSendFailure, Method: method, URL: u, Err: err}
}

func parseEnvelope[T any](c *Client, method, u, reqBody string, status int, text []byte) (*T, error) {
	warn := func(msg string) {
		evt := c.logger.Warn().Str("method", method).Str("url", u).Str("response", string(text))
		if reqBody != "" {
			evt = evt.Str("body", reqBody)
		}
		evt.Msg(msg)
	}

	if status < 200 || status >= 300 {
		warn("Server returned an error response")
		msg := string(text)
		var env Response[json.RawMessage]
		if err := json.Unmarshal(text, &env); err == nil && len(env.Error) > 0 {
			msg = errorMessage(env.Error)
		}
		return nil, &ClientError{
			Kind:       KindServerError,
			Method:     method,
			URL:        u,
			StatusCode: status,
			RawBody:    string(text),
			Message:    msg,
		}
	}

	var env Response[T]
	if err := json.Unmarshal(text, &env); err != nil {
		warn("Unexpected response from server")
		return nil, &ClientError{
			Kind:    KindInvalidResponse,
			Method:  method,
			URL:     u,
			RawBody: string(text),
			Err:     err,
		}
	}

	if len(env.Error) > 0 && !bytes.Equal(env.Error, []byte("null")) {
		warn("Server reported an error")
		return nil, &ClientError{
			Kind:       KindServerError,
			Method:     method,
			URL:        u,
			StatusCode: status,
			RawBody:    string(text),
			Message:    errorMessage(env.Error),
		}
	}

	return env.Data, nil
}

// errorMessage renders an error payload that may be either a plain string or
// a structured object.
func errorMessage(raw []byte) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var structured struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil && structured.Message != "" {
		return structured.Message
	}
	return string(raw)
}
