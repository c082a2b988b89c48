package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPClientExtractText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Errorf("expected bearer auth header")
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["url"] != "https://files.example.com/vault/abc_scan" {
			t.Errorf("unexpected url: %s", req["url"])
		}
		json.NewEncoder(w).Encode(map[string]string{"text": "Annual Insurance Policy"})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	text, err := client.ExtractText(context.Background(), "https://files.example.com/vault/abc_scan")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if text != "Annual Insurance Policy" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestHTTPClientSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "unreadable image", "type": "invalid_input"},
		})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	if _, err := client.ExtractText(context.Background(), "https://files.example.com/vault/bad"); err == nil {
		t.Fatal("expected error from API failure")
	}
}

func TestNewHTTPClientRequiresConfig(t *testing.T) {
	if _, err := NewHTTPClient("", "key"); err == nil {
		t.Fatal("expected error for missing url")
	}
	if _, err := NewHTTPClient("https://ocr.example.com", ""); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestDisabledEngineAlwaysFails(t *testing.T) {
	if _, err := (Disabled{}).ExtractText(context.Background(), "anything"); err == nil {
		t.Fatal("expected disabled engine to fail")
	}
}
