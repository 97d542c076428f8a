package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hielopolar/polar/internal/asset"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	if _, err := parseBaseURL("  "); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("parseBaseURL(blank) = %v, want ErrNotConfigured", err)
	}

	u, err := parseBaseURL("abc.supabase.co")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "abc.supabase.co" {
		t.Fatalf("url = %q, want https://abc.supabase.co", u.String())
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_RequestsAndHeaders(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		requests []*http.Request
		bodies   []string
	)
	model := "Polar-3000XL"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, r)
		bodies = append(bodies, string(body))
		mu.Unlock()

		if r.URL.Path != "/rest/v1/conservadores" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]asset.RawRow{{ID: "CON-001", Model: model, Status: "available"}})
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "secret", "conservadores")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	rows, err := c.ListAssets(ctx)
	if err != nil {
		t.Fatalf("ListAssets returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].Model != model {
		t.Fatalf("ListAssets = %#v", rows)
	}

	if err := c.UpsertAssets(ctx, asset.ToRow(asset.Seed()[0], time.Now())); err != nil {
		t.Fatalf("UpsertAssets returned error: %v", err)
	}
	if err := c.UpsertAssets(ctx); err != nil {
		t.Fatalf("UpsertAssets() with no rows returned error: %v", err)
	}
	if err := c.DeleteAsset(ctx, "CON-001"); err != nil {
		t.Fatalf("DeleteAsset returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(requests) != 3 {
		t.Fatalf("got %d requests, want 3", len(requests))
	}
	get, post, del := requests[0], requests[1], requests[2]

	if get.URL.Query().Get("order") != "created_at.desc" || get.URL.Query().Get("select") != "*" {
		t.Fatalf("list query = %v", get.URL.Query())
	}
	for _, r := range requests {
		if r.Header.Get("apikey") != "secret" || r.Header.Get("Authorization") != "Bearer secret" {
			t.Fatalf("%s missing auth headers: %v", r.Method, r.Header)
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "polar/") {
			t.Fatalf("User-Agent = %q, want polar/*", r.Header.Get("User-Agent"))
		}
	}
	if prefer := post.Header.Get("Prefer"); !strings.Contains(prefer, "resolution=merge-duplicates") || !strings.Contains(prefer, "missing=default") {
		t.Fatalf("upsert Prefer = %q", post.Header.Get("Prefer"))
	}
	if post.URL.Query().Get("on_conflict") != "id" {
		t.Fatalf("upsert on_conflict = %q", post.URL.Query().Get("on_conflict"))
	}
	var sent []asset.RawRow
	if err := json.Unmarshal([]byte(bodies[1]), &sent); err != nil || len(sent) != 1 || sent[0].ID != "CON-001" {
		t.Fatalf("upsert body = %s (%v)", bodies[1], err)
	}
	if strings.Contains(bodies[1], "created_at") {
		t.Fatalf("update upsert sent created_at: %s", bodies[1])
	}
	if del.URL.Query().Get("id") != "eq.CON-001" {
		t.Fatalf("delete filter = %q", del.URL.Query().Get("id"))
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	fail.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"JWT expired"}`))
			return
		}
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListAssets(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 401: JWT expired") {
		t.Fatalf("ListAssets error = %v, want status 401 with message", err)
	}

	fail.Store(false)
	_, err = c.ListAssets(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListAssets error = %v, want decode response error", err)
	}
}

func TestClient_DeleteRequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", "", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.DeleteAsset(context.Background(), " "); err == nil {
		t.Fatalf("DeleteAsset returned nil error, want error")
	}
}
