package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(srv *httptest.Server, opts Options) *Fetcher {
	if opts.Client == nil {
		opts.Client = srv.Client()
	}
	// Point the kerberos paths at nothing so availability checks fail
	// deterministically regardless of the host environment.
	if opts.CCachePath == "" {
		opts.CCachePath = "/nonexistent/ccache"
	}
	if opts.Krb5ConfPath == "" {
		opts.Krb5ConfPath = "/nonexistent/krb5.conf"
	}
	return NewFetcher(opts)
}

func TestFetchNoAuthNeeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello world"))
	}))
	defer srv.Close()

	f := newTestFetcher(srv, Options{})

	result, err := f.Fetch(context.Background(), srv.URL, MethodAuto)
	require.NoError(t, err)

	assert.Contains(t, result, "Success (no auth needed)")
	assert.Contains(t, result, "Status: 200")
	assert.Contains(t, result, "hello world")
}

func TestFetchNon401Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := newTestFetcher(srv, Options{})

	result, err := f.Fetch(context.Background(), srv.URL, MethodAuto)
	require.NoError(t, err)

	assert.Contains(t, result, "Error: HTTP 500")
}

func TestFetch401NoMethodsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := newTestFetcher(srv, Options{})
	f.username = ""
	f.domain = ""

	result, err := f.Fetch(context.Background(), srv.URL, MethodAuto)
	require.NoError(t, err)

	assert.Contains(t, result, "No authentication methods available")
}

func TestFetch401NTLMRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("WWW-Authenticate", "Basic")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := newTestFetcher(srv, Options{Username: "alice", Domain: "CORP"})

	result, err := f.Fetch(context.Background(), srv.URL, MethodNTLM)
	require.NoError(t, err)

	assert.Contains(t, result, "Authentication failed for "+srv.URL)
	assert.Contains(t, result, "ntlm: HTTP 401")
}

func TestFetchUnknownMethod(t *testing.T) {
	f := NewFetcher(Options{Client: &http.Client{}})

	_, err := f.Fetch(context.Background(), "http://example.invalid", "basic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown auth method")
}

func TestAvailableWithNTLMIdentity(t *testing.T) {
	f := NewFetcher(Options{
		Username:     "alice",
		Domain:       "CORP",
		CCachePath:   "/nonexistent/ccache",
		Krb5ConfPath: "/nonexistent/krb5.conf",
	})

	methods := f.Available()
	assert.Contains(t, methods, MethodNTLM)
	assert.NotContains(t, methods, MethodKerberos)
}

func TestTruncate(t *testing.T) {
	short := "short body"
	assert.Equal(t, short, truncate(short))

	long := strings.Repeat("x", maxBodyChars+100)
	got := truncate(long)
	assert.Contains(t, got, "[Content truncated to 5000 characters]")
	assert.Equal(t, maxBodyChars, strings.Index(got, "\n\n[Content"))
}
