package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient(10*time.Second, WithUserAgent("test-agent"))

	assert.Equal(t, 10*time.Second, client.client.Timeout)
	assert.Equal(t, "test-agent", client.userAgent)
}

func TestClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept"), "text/html")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	resp, err := NewClient(5*time.Second).Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body().Close()

	body, err := io.ReadAll(resp.Body())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "text/html", resp.Header("content-type"))
	assert.Equal(t, "<html></html>", string(body))
}

func TestClient_Get_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	resp, err := NewClient(5*time.Second).Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_Get_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(5*time.Second).Get(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, int32(maxRetries), atomic.LoadInt32(&calls))
}

func TestClient_Get_NoRetryOn4xx(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resp, err := NewClient(5*time.Second).Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Get_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(5*time.Second).Get(ctx, server.URL)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Get_InvalidURL(t *testing.T) {
	_, err := NewClient(time.Second).Get(context.Background(), "://bad")

	assert.Error(t, err)
}
