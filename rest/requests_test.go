package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pong struct {
	Message string `json:"message"`
	Echo    string `json:"echo"`
}

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"message":"pong"}`))
	}))
	defer server.Close()

	var out pong
	err := GetJSON(context.Background(), server.Client(), server.URL+"/ping", map[string]string{"Authorization": "Bearer abc"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "pong", out.Message)
}

func TestPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"message":"ok","echo":"posted"}`))
	}))
	defer server.Close()

	var out pong
	err := PostJSON(context.Background(), server.Client(), server.URL, nil, map[string]string{"q": "x"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "posted", out.Echo)
}

func TestNonOKStatusRedactsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	var out pong
	err := GetJSON(context.Background(), server.Client(), server.URL+"/v0/addresses?api-key=secret", nil, &out)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.NotContains(t, err.Error(), "secret")
	assert.Contains(t, err.Error(), "/v0/addresses")
}

func TestInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	var out pong
	err := GetJSON(context.Background(), server.Client(), server.URL, nil, &out)
	require.Error(t, err)
}

func TestCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out pong
	err := GetJSON(ctx, server.Client(), server.URL+"?key=secret", nil, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NotContains(t, err.Error(), "secret")
}
