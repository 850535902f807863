package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Value string `json:"value"`
}

func newTestClient(t *testing.T, serverURL string, logs *bytes.Buffer, opts ...ClientOpt) *Client {
	t.Helper()
	opts = append([]ClientOpt{WithLogger(zerolog.New(logs))}, opts...)
	c, err := NewClient(serverURL, opts...)
	require.NoError(t, err)
	return c
}

func TestGet_SuccessEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`{"data":{"value":"hello"}}`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	c := newTestClient(t, server.URL, &logs)

	result, err := Get[testPayload](context.Background(), c, "resource")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "hello", result.Value)
}

func TestGet_NotFoundIsAbsenceNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var logs bytes.Buffer
	c := newTestClient(t, server.URL, &logs)

	result, err := Get[testPayload](context.Background(), c, "resource")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NotContains(t, logs.String(), `"level":"warn"`)
}

func TestGet_EmptyBodyIsInvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var logs bytes.Buffer
	c := newTestClient(t, server.URL, &logs)

	// absence is reserved for 404; a bare 200 is a protocol fault
	result, err := Get[testPayload](context.Background(), c, "resource")
	require.Error(t, err)
	assert.Nil(t, result)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, KindInvalidResponse, clientErr.Kind)
	assert.False(t, clientErr.Retryable())
	assert.Contains(t, logs.String(), `"level":"warn"`)
}

func TestGet_NonJSONBodyIsInvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer server.Close()

	var logs bytes.Buffer
	c := newTestClient(t, server.URL, &logs)

	result, err := Get[testPayload](context.Background(), c, "resource")
	require.Error(t, err)
	assert.Nil(t, result)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, KindInvalidResponse, clientErr.Kind)
	assert.Equal(t, "<html>definitely not json</html>", clientErr.RawBody)
	assert.False(t, clientErr.Retryable())

	// exactly one warning, carrying the raw body
	assert.Equal(t, 1, strings.Count(logs.String(), `"level":"warn"`))
	assert.Contains(t, logs.String(), "definitely not json")
}

func TestGet_SendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	var logs bytes.Buffer
	c := newTestClient(t, server.URL, &logs)

	_, err := Get[testPayload](context.Background(), c, "resource")
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, KindSendFailure, clientErr.Kind)
	assert.True(t, clientErr.Retryable())
	assert.Contains(t, logs.String(), "Failed to send request")
}

func TestGet_BearerTokenAttached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"value":"ok"}}`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	c := newTestClient(t, server.URL, &logs, WithAuthToken("s3cret"))

	_, err := Get[testPayload](context.Background(), c, "resource")
	require.NoError(t, err)
}

func TestPut_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"error":"block already indexed"}`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	c := newTestClient(t, server.URL, &logs)

	_, err := Put[testPayload](context.Background(), c, "resource", map[string]string{"key": "value"})
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, KindServerError, clientErr.Kind)
	assert.Equal(t, "block already indexed", clientErr.Message)
	assert.True(t, clientErr.Retryable())

	// one warning, carrying the outgoing body and the response
	assert.Equal(t, 1, strings.Count(logs.String(), `"level":"warn"`))
	assert.Contains(t, logs.String(), `\"key\":\"value\"`)
	assert.Contains(t, logs.String(), "block already indexed")
}

func TestPut_NotFoundIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no such route"}`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	c := newTestClient(t, server.URL, &logs)

	_, err := Put[testPayload](context.Background(), c, "resource", testPayload{Value: "v"})
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, KindServerError, clientErr.Kind)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestPut_SuccessWithEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var logs bytes.Buffer
	c := newTestClient(t, server.URL, &logs)

	result, err := Put[testPayload](context.Background(), c, "resource", testPayload{Value: "v"})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestGet_NonSuccessStatusCarriesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	c := newTestClient(t, server.URL, &logs)

	_, err := Get[testPayload](context.Background(), c, "resource")
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, KindServerError, clientErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, clientErr.StatusCode)
	assert.Equal(t, "boom", clientErr.Message)
	assert.Contains(t, clientErr.RawBody, "boom")
}

func TestNewClient_HostWithoutScheme(t *testing.T) {
	c, err := NewClient("localhost:3500")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3500", c.BaseURL().String())

	_, err = NewClient("not a url")
	assert.Error(t, err)
}
