package wxcc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientConfig{
		BaseURL:     srv.URL,
		AccessToken: "test-token_org123",
	}, nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client, srv
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient(ClientConfig{AccessToken: "tok"}, nil); err == nil {
		t.Error("expected error for missing base URL")
	}
	if _, err := NewClient(ClientConfig{BaseURL: "https://api.example.com"}, nil); err == nil {
		t.Error("expected error for missing access token")
	}
}

func TestExecute_Success(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody map[string]any

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"data": {"taskDetails": {"tasks": []}}}`))
	})

	data, err := client.Execute(context.Background(), "{ taskDetails }", map[string]any{"limit": 10})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if gotPath != "/search" {
		t.Errorf("path = %q, want /search", gotPath)
	}
	if gotAuth != "Bearer test-token_org123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody["query"] != "{ taskDetails }" {
		t.Errorf("query = %v", gotBody["query"])
	}
	if vars, ok := gotBody["variables"].(map[string]any); !ok || vars["limit"] != float64(10) {
		t.Errorf("variables = %v", gotBody["variables"])
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("returned data is not valid JSON: %v", err)
	}
	if _, ok := decoded["taskDetails"]; !ok {
		t.Errorf("data = %s, want taskDetails key", data)
	}
}

func TestExecute_NilVariables(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["variables"].(map[string]any); !ok {
			t.Errorf("variables should be an empty object, got %v", body["variables"])
		}
		_, _ = w.Write([]byte(`{"data": {}}`))
	})

	if _, err := client.Execute(context.Background(), "{}", nil); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}

func TestExecute_MissingData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	data, err := client.Execute(context.Background(), "{}", nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("data = %s, want empty object", data)
	}
}

func TestExecute_TransportError_Status(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	_, err := client.Execute(context.Background(), "{}", nil)
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if terr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", terr.Status)
	}
}

func TestExecute_TransportError_Network(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.Execute(context.Background(), "{}", nil)
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if terr.Status != 0 {
		t.Errorf("Status = %d, want 0 for network failure", terr.Status)
	}
}

func TestExecute_QueryError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors": [{"message": "bad token"}], "data": {"partial": true}}`))
	})

	_, err := client.Execute(context.Background(), "{}", nil)
	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("error = %v, want *QueryError", err)
	}
	if len(qerr.Errors) != 1 || qerr.Errors[0].Message != "bad token" {
		t.Errorf("Errors = %+v", qerr.Errors)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 100); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	got := truncate(string(long), 100)
	if len(got) != 103 {
		t.Errorf("len = %d, want 103", len(got))
	}

	// A cut landing mid-rune backs up to the rune boundary.
	got = truncate("abécd", 3)
	if got != "ab..." {
		t.Errorf("truncate mid-rune = %q, want %q", got, "ab...")
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
}
