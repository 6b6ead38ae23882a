package mimiry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Kind != KindConfiguration {
		t.Errorf("expected configuration kind, got %s", apiErr.Kind)
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c, err := New("mky_test", WithBaseURL("https://api.example.com/v1/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if c.baseURL != "https://api.example.com/v1" {
		t.Errorf("expected trimmed base url, got %q", c.baseURL)
	}
}

func TestClient_RequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer mky_test" {
			t.Errorf("expected bearer header, got %q", got)
		}
		if got := r.Header.Get("X-Request-ID"); got == "" {
			t.Error("expected X-Request-ID header")
		}
		if r.Method == "POST" {
			if got := r.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("expected json content type, got %q", got)
			}
		} else if got := r.Header.Get("Content-Type"); got != "" {
			t.Errorf("expected no content type on bodyless request, got %q", got)
		}
		if r.Method == "POST" {
			_ = json.NewEncoder(w).Encode(SSHKey{})
		} else {
			_ = json.NewEncoder(w).Encode([]Job{})
		}
	}))
	defer server.Close()

	c, err := New("mky_test", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if _, err := c.ListJobs(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.AddSSHKey(context.Background(), "laptop", "ssh-ed25519 AAAA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_ErrorBodyPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":   "not enough credits",
			"balance": 0.25,
		})
	}))
	defer server.Close()

	c, err := New("mky_test", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	_, err = c.GetJob(context.Background(), "job-1")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Kind != KindInsufficientCredits {
		t.Errorf("expected insufficient_credits, got %s", apiErr.Kind)
	}
	if apiErr.Message != "not enough credits" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if apiErr.Body["balance"] != 0.25 {
		t.Errorf("expected raw body field to survive, got %v", apiErr.Body)
	}
}

func TestClient_EmptyErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := New("mky_test", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	_, err = c.ListJobs(context.Background())

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Kind != KindServer {
		t.Errorf("expected server kind, got %s", apiErr.Kind)
	}
	if apiErr.Message != "Unknown error" {
		t.Errorf("expected Unknown error, got %q", apiErr.Message)
	}
}

func TestSleepContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
