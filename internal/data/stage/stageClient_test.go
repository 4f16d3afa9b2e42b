package stage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akolanti/DocQueryAPI/internal/faults"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
)

func init() {
	logger_i.Init()
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.pdf")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("temp file: %v", err)
	}
	return path
}

func TestPut_ReturnsAssignedKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("multipart parse: %v", err)
		}
		if got := r.FormValue("key"); got != "file-1/report.pdf" {
			t.Errorf("key field got %q", got)
		}
		// the gateway rewrites the leaf, like the real one does
		w.Write([]byte(`{"key":"file-1/report_0001.pdf"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	key, err := c.Put(context.Background(), writeTempFile(t, "%PDF-1.4 fake"), "@docs", "file-1/report.pdf")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if key != "file-1/report_0001.pdf" {
		t.Errorf("Assigned key got %q", key)
	}
}

func TestPut_EmptyResponseKeepsRequestedKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	key, err := c.Put(context.Background(), writeTempFile(t, "data"), "@docs", "file-2/a.pdf")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if key != "file-2/a.pdf" {
		t.Errorf("Expected requested key back, got %q", key)
	}
}

func TestPut_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Put(context.Background(), writeTempFile(t, "data"), "@docs", "file-3/a.pdf")
	if !faults.IsUpstream(err) {
		t.Errorf("Expected upstream error, got %v", err)
	}
}

func TestPresign_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "file-1/report.pdf" {
			t.Errorf("presign key got %q", got)
		}
		if got := r.URL.Query().Get("ttl"); got != "300" {
			t.Errorf("presign ttl got %q", got)
		}
		w.Write([]byte(`{"url":"http://signed.example/obj?sig=abc"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	u, err := c.Presign(context.Background(), "@docs", "file-1/report.pdf", 300*time.Second)
	if err != nil {
		t.Fatalf("Presign failed: %v", err)
	}
	if u != "http://signed.example/obj?sig=abc" {
		t.Errorf("Presigned url got %q", u)
	}
}

func TestPresign_MissingObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Presign(context.Background(), "@docs", "ghost.pdf", time.Minute); !faults.IsUpstream(err) {
		t.Errorf("Expected upstream error for 404, got %v", err)
	}
}

func TestFetch_StreamsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("pdf-bytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	resp, err := c.Fetch(context.Background(), srv.URL+"/obj")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "pdf-bytes" {
		t.Errorf("Body got %q", body)
	}
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Fetch(context.Background(), srv.URL+"/obj"); !faults.IsUpstream(err) {
		t.Errorf("Expected upstream error for 403, got %v", err)
	}
}
