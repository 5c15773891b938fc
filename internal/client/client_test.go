package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"alchemist/internal/notify"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Notify(_ notify.Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func (r *recordingNotifier) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"success":true,"data":{"status":"ok"}}`))
	}))
	defer server.Close()

	c := New(server.URL, WithToken("secret-token"))
	if _, err := c.System().Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotReqID == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.System().Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no auth header, got %q", gotAuth)
	}
}

func TestClient_ErrorNotification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"database unavailable"}`))
	}))
	defer server.Close()

	rec := &recordingNotifier{}
	c := New(server.URL, WithNotifier(rec), WithQuietPaths(nil))

	_, err := c.Rules().List(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsStatus(err, http.StatusInternalServerError) {
		t.Errorf("expected status 500 on error, got %v", err)
	}
	if rec.count() != 1 {
		t.Fatalf("expected 1 notification, got %d", rec.count())
	}
	if rec.last() != "database unavailable" {
		t.Errorf("expected server message preferred, got %q", rec.last())
	}
}

func TestClient_QuietPathSuppressesNotificationButPropagatesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"no data uploaded"}`))
	}))
	defer server.Close()

	rec := &recordingNotifier{}
	c := New(server.URL, WithNotifier(rec)) // default quiet list covers /upload/status

	_, err := c.Upload().Status(context.Background())
	if err == nil {
		t.Fatal("expected error to propagate despite suppression")
	}
	if !IsStatus(err, http.StatusBadRequest) {
		t.Errorf("expected status 400, got %v", err)
	}
	if rec.count() != 0 {
		t.Errorf("expected no notifications for quiet path, got %d", rec.count())
	}
}

func TestClient_ErrorMessageFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	rec := &recordingNotifier{}
	c := New(server.URL, WithNotifier(rec), WithQuietPaths(nil))

	_, err := c.Rules().List(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if rec.last() != "502 Bad Gateway" {
		t.Errorf("expected status text fallback, got %q", rec.last())
	}
}

func TestClient_EnvelopeFailureOn200(t *testing.T) {
	// Some endpoints signal failure in the envelope with HTTP 200.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"validation engine busy"}`))
	}))
	defer server.Close()

	rec := &recordingNotifier{}
	c := New(server.URL, WithNotifier(rec), WithQuietPaths(nil))

	_, err := c.Rules().List(context.Background())
	if !IsStatus(err, http.StatusOK) {
		t.Fatalf("expected envelope failure carrying status 200, got %v", err)
	}
	if rec.last() != "validation engine busy" {
		t.Errorf("unexpected notification: %q", rec.last())
	}
}

func TestClient_TransportFailure(t *testing.T) {
	rec := &recordingNotifier{}
	c := New("http://127.0.0.1:1", WithNotifier(rec), WithQuietPaths(nil)) // nothing listens here

	_, err := c.Rules().List(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !IsStatus(err, 0) {
		t.Errorf("expected status 0 for transport failure, got %v", err)
	}
	if rec.count() != 1 {
		t.Errorf("expected 1 notification, got %d", rec.count())
	}
}
