package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/opentok/opentok-go/pkg/api"
)

const (
	testKey    = "123456"
	testSecret = "0123456789abcdef0123456789abcdef01234567"
)

// useServer points the global flags at server and restores them afterwards.
func useServer(t *testing.T, server *httptest.Server) {
	t.Helper()

	prevKey, prevSecret, prevURL := apiKey, apiSecret, apiURL
	prevTimeout, prevJSON, prevDebug := timeout, jsonOutput, debug
	t.Cleanup(func() {
		apiKey, apiSecret, apiURL = prevKey, prevSecret, prevURL
		timeout, jsonOutput, debug = prevTimeout, prevJSON, prevDebug
	})

	apiKey = testKey
	apiSecret = testSecret
	apiURL = server.URL
	timeout = 5 * time.Second
	jsonOutput = false
	debug = false
}

// run executes cmd's RunE with output captured.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	t.Cleanup(func() { cmd.SetOut(nil) })

	err := cmd.RunE(cmd, args)
	return buf.String(), err
}

// setFlag sets a command flag for the duration of the test.
func setFlag(t *testing.T, cmd *cobra.Command, name, value string) {
	t.Helper()

	f := cmd.Flags().Lookup(name)
	if f == nil {
		t.Fatalf("unknown flag %q", name)
	}
	prev := f.Value.String()
	if err := cmd.Flags().Set(name, value); err != nil {
		t.Fatalf("set flag %s: %v", name, err)
	}
	t.Cleanup(func() {
		_ = cmd.Flags().Set(name, prev)
		f.Changed = false
	})
}

// TestGetBaseURL tests URL resolution logic
func TestGetBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		flagURL  string
		envURL   string
		expected string
	}{
		{"flag takes precedence", "http://flag.com", "http://env.com", "http://flag.com"},
		{"env when no flag", "", "http://env.com", "http://env.com"},
		{"default when neither", "", "", api.DefaultServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := apiURL
			defer func() { apiURL = previous }()

			apiURL = tt.flagURL
			t.Setenv("OPENTOK_API_URL", tt.envURL)

			if got := getBaseURL(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

// TestGetCredentials tests key and secret resolution
func TestGetCredentials(t *testing.T) {
	prevKey, prevSecret := apiKey, apiSecret
	defer func() { apiKey, apiSecret = prevKey, prevSecret }()

	t.Setenv("OPENTOK_API_KEY", "env-key")
	t.Setenv("OPENTOK_API_SECRET", "env-secret")

	apiKey, apiSecret = "flag-key", "flag-secret"
	if c := getCredentials(); c.APIKey != "flag-key" || c.APISecret != "flag-secret" {
		t.Errorf("expected flag values, got %+v", c)
	}

	apiKey, apiSecret = "", ""
	if c := getCredentials(); c.APIKey != "env-key" || c.APISecret != "env-secret" {
		t.Errorf("expected env values, got %+v", c)
	}
}

func TestDebugEnabled(t *testing.T) {
	previous := debug
	defer func() { debug = previous }()

	tests := []struct {
		flag bool
		env  string
		want bool
	}{
		{false, "", false},
		{true, "", true},
		{false, "true", true},
		{false, "1", true},
		{false, "no", false},
		{false, "0", false},
	}

	for _, tt := range tests {
		debug = tt.flag
		t.Setenv("OPENTOK_DEBUG", tt.env)
		if got := debugEnabled(); got != tt.want {
			t.Errorf("debug=%v OPENTOK_DEBUG=%q: expected %v, got %v", tt.flag, tt.env, tt.want, got)
		}
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	prevKey, prevSecret := apiKey, apiSecret
	defer func() { apiKey, apiSecret = prevKey, prevSecret }()

	apiKey, apiSecret = "", ""
	t.Setenv("OPENTOK_API_KEY", "")
	t.Setenv("OPENTOK_API_SECRET", "")

	if _, err := newClient(); err == nil {
		t.Error("expected error without credentials")
	}
}

// TestOutputJSON tests JSON output formatting
func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := outputJSON(&buf, map[string]string{"key": "value"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result map[string]string
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Errorf("invalid JSON output: %v", err)
	}
	if result["key"] != "value" {
		t.Errorf("expected value, got %s", result["key"])
	}
}

func TestSessionCreateCommand(t *testing.T) {
	var form string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/create" {
			t.Errorf("expected /session/create, got %s", r.URL.Path)
		}
		if !strings.Contains(r.Header.Get("User-Agent"), "opentok-cli") {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		body, _ := io.ReadAll(r.Body)
		form = string(body)
		_, _ = w.Write([]byte(`<sessions><Session><session_id>SESSIONID</session_id></Session></sessions>`))
	}))
	defer server.Close()
	useServer(t, server)
	setFlag(t, sessionCreateCmd, "media-mode", "relayed")

	out, err := run(t, sessionCreateCmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Session ID: SESSIONID") {
		t.Errorf("unexpected output %q", out)
	}
	if form != "api_key="+testKey+"&p2p.preference=relayed" {
		t.Errorf("unexpected form %q", form)
	}
}

func TestArchiveGetCommandJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/project/"+testKey+"/archive/ARCHIVEID" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ARCHIVEID","status":"available","sessionId":"SESSIONID","createdAt":1384221730000}`))
	}))
	defer server.Close()
	useServer(t, server)
	jsonOutput = true

	out, err := run(t, archiveGetCmd, "ARCHIVEID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var a api.Archive
	if err := json.Unmarshal([]byte(out), &a); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if a.ID != "ARCHIVEID" || a.Status != "available" {
		t.Errorf("unexpected archive %+v", a)
	}
}

func TestArchiveStopNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()
	useServer(t, server)

	out, err := run(t, archiveStopCmd, "ARCHIVEID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "No content" {
		t.Errorf("unexpected output %q", out)
	}

	jsonOutput = true
	out, err = run(t, archiveStopCmd, "ARCHIVEID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "null" {
		t.Errorf("unexpected JSON output %q", out)
	}
}

func TestArchiveListCommand(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":7,"items":[{"id":"A1","status":"started","createdAt":1384221730000,"name":"standup"}]}`))
	}))
	defer server.Close()
	useServer(t, server)
	setFlag(t, archiveListCmd, "count", "1")

	out, err := run(t, archiveListCmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query != "count=1" {
		t.Errorf("unexpected query %q", query)
	}
	if !strings.Contains(out, "Archives (1 of 7)") || !strings.Contains(out, "A1") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestArchiveDeleteAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	useServer(t, server)

	_, err := run(t, archiveDeleteCmd, "ARCHIVEID")
	if err == nil || !strings.Contains(err.Error(), "authentication failed") {
		t.Errorf("expected authentication failure, got %v", err)
	}
}

func TestBroadcastStartRequiresOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer server.Close()
	useServer(t, server)

	_, err := run(t, broadcastStartCmd, "SESSIONID")
	if err == nil || !strings.Contains(err.Error(), "--hls or --rtmp-url") {
		t.Errorf("expected missing output error, got %v", err)
	}
}

func TestBroadcastStartCommand(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"B1","sessionId":"SESSIONID","status":"started","broadcastUrls":{"hls":"https://hls.example.com/x.m3u8"}}`))
	}))
	defer server.Close()
	useServer(t, server)
	setFlag(t, broadcastStartCmd, "hls", "true")
	setFlag(t, broadcastStartCmd, "layout", "pip")

	out, err := run(t, broadcastStartCmd, "SESSIONID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["type"] != "pip" {
		t.Errorf("expected top-level layout type, got %v", body)
	}
	if !strings.Contains(out, "HLS: https://hls.example.com/x.m3u8") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSignalCommandNotConnected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/connection/CONNID/signal") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()
	useServer(t, server)
	setFlag(t, signalCmd, "data", "hello")
	setFlag(t, signalCmd, "connection", "CONNID")

	_, err := run(t, signalCmd, "SESSIONID")
	if err == nil || !strings.Contains(err.Error(), "not in the session") {
		t.Errorf("expected not connected error, got %v", err)
	}
}

func TestSignalCommandRequiresData(t *testing.T) {
	_, err := run(t, signalCmd, "SESSIONID")
	if err == nil || !strings.Contains(err.Error(), "--data is required") {
		t.Errorf("expected missing data error, got %v", err)
	}
}

func TestDisconnectCommand(t *testing.T) {
	var method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()
	useServer(t, server)

	out, err := run(t, disconnectCmd, "SESSIONID", "CONNID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != http.MethodDelete {
		t.Errorf("expected DELETE, got %s", method)
	}
	if !strings.Contains(out, "disconnected") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDialCommand(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"CALLID","connectionId":"CONNID","streamId":"STREAMID"}`))
	}))
	defer server.Close()
	useServer(t, server)
	setFlag(t, dialCmd, "token", "T1==")
	setFlag(t, dialCmd, "header", "X-Foo=bar")

	out, err := run(t, dialCmd, "SESSIONID", "sip:user@sip.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sip, _ := body["sip"].(map[string]any)
	headers, _ := sip["headers"].(map[string]any)
	if headers["X-Foo"] != "bar" {
		t.Errorf("expected custom header, got %v", sip)
	}
	if !strings.Contains(out, "Call ID: CALLID") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestTokenMintAndVerify(t *testing.T) {
	prevKey, prevSecret, prevJSON := apiKey, apiSecret, jsonOutput
	defer func() { apiKey, apiSecret, jsonOutput = prevKey, prevSecret, prevJSON }()
	apiKey, apiSecret, jsonOutput = testKey, testSecret, false

	out, err := run(t, tokenMintCmd)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	token := strings.TrimSpace(out)

	out, err = run(t, tokenVerifyCmd, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "Issuer: "+testKey) || !strings.Contains(out, "Type: project") {
		t.Errorf("unexpected output %q", out)
	}

	apiSecret = "another-secret"
	if _, err := run(t, tokenVerifyCmd, token); err == nil {
		t.Error("expected verification to fail with the wrong secret")
	}
}

func TestOpenAPICommand(t *testing.T) {
	prevJSON := jsonOutput
	defer func() { jsonOutput = prevJSON }()

	jsonOutput = false
	out, err := run(t, openapiCmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "openapi:") {
		t.Errorf("expected YAML document, got %.40q", out)
	}

	jsonOutput = true
	out, err = run(t, openapiCmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if _, ok := doc["paths"]; !ok {
		t.Error("expected paths in JSON document")
	}
}
