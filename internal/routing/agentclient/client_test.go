package agentclient_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"agent-gateway/internal/routing"
	"agent-gateway/internal/routing/agentclient"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (nopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Info(ctx context.Context, arg ...any)                     {}
func (nopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (nopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Error(ctx context.Context, arg ...any)                    {}
func (nopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (nopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (nopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (nopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (nopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// capturedEnvelope mirrors the wire payload for assertions.
type capturedEnvelope struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  struct {
		Message struct {
			Role  string `json:"role"`
			Parts []struct {
				Kind string `json:"kind"`
				Text string `json:"text"`
				File *struct {
					Bytes string `json:"bytes"`
					Name  string `json:"name"`
				} `json:"file"`
			} `json:"parts"`
			MessageID string `json:"messageId"`
			ContextID string `json:"contextId"`
		} `json:"message"`
		Configuration map[string]any    `json:"configuration"`
		Metadata      map[string]string `json:"metadata"`
	} `json:"params"`
}

func TestSendRequestPayload(t *testing.T) {
	var captured capturedEnvelope
	var authHeader string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &captured); err != nil {
			t.Errorf("payload is not valid JSON: %v", err)
		}
		w.Write([]byte(`{"result": {"kind": "task", "artifacts": [{"parts": [{"kind": "text", "text": "done"}]}]}}`))
	}))
	defer ts.Close()

	c := agentclient.New(nopLogger{}, agentclient.Config{})
	req := routing.UserRequest{SessionID: "s1", Query: "Generate an image of a castle", Route: "http://imager:8080"}
	files := []routing.File{{Name: "sketch.png", Content: []byte{0x89, 0x50, 0x4e, 0x47}}}

	reply, err := c.SendRequest(context.Background(), ts.URL, req, files, "user-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "done" {
		t.Errorf("unexpected reply: %s", reply)
	}

	if authHeader != "Bearer user-token" {
		t.Errorf("unexpected auth header: %s", authHeader)
	}
	if captured.JSONRPC != "2.0" || captured.Method != "message/send" {
		t.Errorf("unexpected envelope: %s %s", captured.JSONRPC, captured.Method)
	}
	if captured.ID != "s1" {
		t.Errorf("envelope id should be the session id, got %s", captured.ID)
	}

	msg := captured.Params.Message
	if msg.Role != "user" {
		t.Errorf("unexpected role: %s", msg.Role)
	}
	if msg.MessageID == "" || msg.ContextID == "" || msg.MessageID == msg.ContextID {
		t.Errorf("expected distinct non-empty messageId/contextId, got %q %q", msg.MessageID, msg.ContextID)
	}
	if len(msg.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(msg.Parts))
	}
	if msg.Parts[0].Kind != "text" || msg.Parts[0].Text != "Generate an image of a castle" {
		t.Errorf("text part must come first: %+v", msg.Parts[0])
	}
	if msg.Parts[1].Kind != "file" || msg.Parts[1].File == nil {
		t.Fatalf("expected a file part second: %+v", msg.Parts[1])
	}
	if msg.Parts[1].File.Name != "sketch.png" {
		t.Errorf("unexpected file name: %s", msg.Parts[1].File.Name)
	}
	decoded, err := base64.StdEncoding.DecodeString(msg.Parts[1].File.Bytes)
	if err != nil || string(decoded) != string(files[0].Content) {
		t.Errorf("file bytes did not round-trip: %v", err)
	}

	if blocking, ok := captured.Params.Configuration["blocking"].(bool); !ok || !blocking {
		t.Errorf("expected configuration.blocking true, got %v", captured.Params.Configuration)
	}
	if _, ok := captured.Params.Configuration["historyLength"]; ok {
		t.Errorf("unset optionals must be stripped, got %v", captured.Params.Configuration)
	}
	if captured.Params.Metadata["route"] != "http://imager:8080" {
		t.Errorf("expected metadata.route, got %v", captured.Params.Metadata)
	}
}

func TestSendRequestWithoutRoute(t *testing.T) {
	var captured capturedEnvelope

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &captured)
		w.Write([]byte(`{"result": {"kind": "message", "parts": [{"kind": "text", "text": "hello"}]}}`))
	}))
	defer ts.Close()

	c := agentclient.New(nopLogger{}, agentclient.Config{})
	reply, err := c.SendRequest(context.Background(), ts.URL, routing.UserRequest{SessionID: "s1", Query: "hi"}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "hello" {
		t.Errorf("unexpected reply: %s", reply)
	}
	if captured.Params.Metadata == nil {
		t.Error("metadata must be an empty object, not null")
	}
	if _, ok := captured.Params.Metadata["route"]; ok {
		t.Errorf("metadata.route must be absent without a sticky route, got %v", captured.Params.Metadata)
	}
}

func TestExtractReply(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "Concatenates Artifact Text Parts",
			body: `{"result": {"artifacts": [
				{"parts": [{"kind": "text", "text": "first"}, {"kind": "file", "text": "skip"}]},
				{"parts": [{"kind": "text", "text": "second"}]}
			]}}`,
			want: "first\nsecond",
		},
		{
			name: "Falls Back To Message Parts",
			body: `{"result": {"artifacts": [], "message": {"parts": [{"kind": "text", "text": "from message"}]}}}`,
			want: "from message",
		},
		{
			name: "Falls Back To Bare Parts",
			body: `{"result": {"kind": "message", "parts": [{"kind": "text", "text": "bare"}]}}`,
			want: "bare",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			c := agentclient.New(nopLogger{}, agentclient.Config{})
			reply, err := c.SendRequest(context.Background(), ts.URL, routing.UserRequest{SessionID: "s1", Query: "q"}, nil, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reply != tc.want {
				t.Errorf("expected %q, got %q", tc.want, reply)
			}
		})
	}
}

func TestSendRequestErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "JSON-RPC Error Envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"error": {"code": -32000, "message": "agent exploded"}}`))
			},
		},
		{
			name: "Non-2xx Status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
		},
		{
			name: "Missing Result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
		},
		{
			name: "No Text Parts",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"result": {"artifacts": [{"parts": [{"kind": "file"}]}]}}`))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(tc.handler)
			defer ts.Close()

			c := agentclient.New(nopLogger{}, agentclient.Config{})
			_, err := c.SendRequest(context.Background(), ts.URL, routing.UserRequest{SessionID: "s1", Query: "q"}, nil, "")
			var clientErr *routing.AgentClientError
			if err == nil || !errors.As(err, &clientErr) {
				t.Fatalf("expected AgentClientError, got %v", err)
			}
		})
	}

	t.Run("Unreachable Agent", func(t *testing.T) {
		c := agentclient.New(nopLogger{}, agentclient.Config{})
		_, err := c.SendRequest(context.Background(), "http://127.0.0.1:1", routing.UserRequest{SessionID: "s1", Query: "q"}, nil, "")
		var clientErr *routing.AgentClientError
		if err == nil || !errors.As(err, &clientErr) {
			t.Fatalf("expected AgentClientError, got %v", err)
		}
	})
}

func TestHealthCheck(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := agentclient.New(nopLogger{}, agentclient.Config{})
	if !c.HealthCheck(context.Background(), ts.URL+"/") {
		t.Error("expected healthy")
	}
	if c.HealthCheck(context.Background(), "http://127.0.0.1:1") {
		t.Error("expected unhealthy for unreachable agent")
	}
}
