package client

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/opentok/opentok-go/pkg/api"
)

const (
	testKey    = "123456"
	testSecret = "0123456789abcdef0123456789abcdef01234567"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		apiSecret string
		opts      []Option
		wantErr   string
	}{
		{
			name:      "valid credentials",
			apiKey:    testKey,
			apiSecret: testSecret,
		},
		{
			name:      "with options",
			apiKey:    testKey,
			apiSecret: testSecret,
			opts: []Option{
				WithTimeout(10 * time.Second),
				WithBaseURL("https://api.dev.opentok.com"),
				WithAppendUserAgent("my-app/2.0"),
			},
		},
		{
			name:      "empty api key",
			apiSecret: testSecret,
			wantErr:   "apiKey cannot be empty",
		},
		{
			name:    "empty api secret",
			apiKey:  testKey,
			wantErr: "apiSecret cannot be empty",
		},
		{
			name:      "zero timeout",
			apiKey:    testKey,
			apiSecret: testSecret,
			opts:      []Option{WithTimeout(0)},
			wantErr:   "timeout must be positive",
		},
		{
			name:      "empty base URL",
			apiKey:    testKey,
			apiSecret: testSecret,
			opts:      []Option{WithBaseURL("")},
			wantErr:   "baseURL cannot be empty",
		},
		{
			name:      "relative base URL",
			apiKey:    testKey,
			apiSecret: testSecret,
			opts:      []Option{WithBaseURL("api.opentok.com")},
			wantErr:   "baseURL must be an absolute URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.apiKey, tt.apiSecret, tt.opts...)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.raw == nil {
				t.Error("expected raw client to be initialized")
			}
			if c.APIKey() != tt.apiKey {
				t.Errorf("expected api key %q, got %q", tt.apiKey, c.APIKey())
			}
		})
	}
}

func TestNewClientUserAgent(t *testing.T) {
	c, err := New(testKey, testSecret, WithAppendUserAgent("my-app/2.0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := api.DefaultUserAgent + " my-app/2.0"
	if c.raw.UserAgent != want {
		t.Errorf("expected user agent %q, got %q", want, c.raw.UserAgent)
	}
}

func TestNewClientDefaultTimeout(t *testing.T) {
	c, err := New(testKey, testSecret, WithTimeout(7*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hc, ok := c.raw.Client.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", c.raw.Client)
	}
	if hc.Timeout != 7*time.Second {
		t.Errorf("expected timeout 7s, got %v", hc.Timeout)
	}
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, err := New(testKey, testSecret, WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.DeleteArchive(context.Background(), "ARCHIVEID"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := api.ParseToken(got.Get(api.AuthHeader), testSecret)
	if err != nil {
		t.Fatalf("auth header does not verify: %v", err)
	}
	if claims.Issuer != testKey {
		t.Errorf("expected issuer %q, got %q", testKey, claims.Issuer)
	}
	if ua := got.Get("User-Agent"); !strings.HasPrefix(ua, "OpenTok-Go-SDK/"+api.Version) {
		t.Errorf("unexpected user agent %q", ua)
	}
}

func TestFreshTokenPerRequest(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.Header.Get(api.AuthHeader)] = true
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, err := New(testKey, testSecret, WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for range 3 {
		if err := c.ForceDisconnect(context.Background(), "SESSIONID", "CONNID"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(seen) != 3 {
		t.Errorf("expected 3 distinct tokens, got %d", len(seen))
	}
}

func TestRequestEditor(t *testing.T) {
	var traceID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = r.Header.Get("X-Trace-Id")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, err := New(testKey, testSecret,
		WithBaseURL(server.URL),
		WithRequestEditor(func(_ context.Context, req *http.Request) error {
			req.Header.Set("X-Trace-Id", "abc")
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.DeleteArchive(context.Background(), "ARCHIVEID"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if traceID != "abc" {
		t.Errorf("expected trace id to be forwarded, got %q", traceID)
	}
}

func TestDebugLogging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := New(testKey, testSecret, WithBaseURL(server.URL), WithLogger(logger))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.DeleteArchive(context.Background(), "ARCHIVEID"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"operation=deleteArchive", "method=DELETE", "status=204"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got %q", want, out)
		}
	}
	if strings.Contains(out, testSecret) {
		t.Error("log must not contain the api secret")
	}
}

type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }
func (failingBody) Close() error             { return nil }

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func TestBodyReadFailure(t *testing.T) {
	doer := doerFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       failingBody{},
			Request:    req,
		}, nil
	})

	c, err := New(testKey, testSecret, WithHTTPClient(doer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.GetArchive(context.Background(), "ARCHIVEID")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsNetworkError(err) {
		t.Errorf("expected network error, got %v", err)
	}
}

func TestClientConcurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ARCHIVEID","status":"available","sessionId":"SESSIONID"}`))
	}))
	defer server.Close()

	c, err := New(testKey, testSecret, WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.GetArchive(context.Background(), "ARCHIVEID"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent request failed: %v", err)
	}
}

func TestClientCopyIsUsable(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, err := New(testKey, testSecret, WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.DeleteArchive(context.Background(), "A1"); err != nil {
		t.Fatalf("original client: %v", err)
	}

	cp := *c
	if err := cp.DeleteArchive(context.Background(), "A2"); err != nil {
		t.Fatalf("copied client: %v", err)
	}
	if cp.APIKey() != testKey {
		t.Errorf("APIKey() = %q, want %q", cp.APIKey(), testKey)
	}
	if len(paths) != 2 || !strings.HasSuffix(paths[1], "/archive/A2") {
		t.Errorf("unexpected requests %v", paths)
	}
}
