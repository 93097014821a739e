package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeStaticBundle creates a bundle directory with an index.html and one
// hashed asset, registers it at /cafe_static, and returns the directory.
func writeStaticBundle(t *testing.T, srv *Server) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<!DOCTYPE html><html>cafe</html>"), 0644); err != nil {
		t.Fatal(err)
	}
	assetsDir := filepath.Join(dir, "assets")
	if err := os.Mkdir(assetsDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, "index-abc.js"), []byte("export {}"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := srv.panels.RegisterStaticPath(context.Background(), "/cafe_static", dir, false); err != nil {
		t.Fatalf("RegisterStaticPath: %v", err)
	}
	return dir
}

func TestStatic_ServesIndexPage(t *testing.T) {
	srv, _ := testServer(t)
	writeStaticBundle(t, srv)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/cafe_static/index.html", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /cafe_static/index.html: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<!DOCTYPE html>") {
		t.Error("response doesn't contain HTML doctype")
	}
}

func TestStatic_ServesHashedAsset(t *testing.T) {
	srv, _ := testServer(t)
	writeStaticBundle(t, srv)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/cafe_static/assets/index-abc.js?v=1700000000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET hashed asset: status = %d, want 200", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Error("empty response body")
	}
}

func TestStatic_NoCacheHeaders(t *testing.T) {
	srv, _ := testServer(t)
	writeStaticBundle(t, srv)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/cafe_static/index.html", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Cache-Control"); got != "no-cache, must-revalidate" {
		t.Errorf("Cache-Control = %q, want no-cache, must-revalidate", got)
	}
}

func TestStatic_BarePrefixServesIndex(t *testing.T) {
	srv, _ := testServer(t)
	writeStaticBundle(t, srv)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/cafe_static", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET bare prefix: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<!DOCTYPE html>") {
		t.Error("bare prefix didn't serve index.html")
	}
}

func TestStatic_UnknownPrefix(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/unregistered/index.html", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("unknown prefix: status = %d, want 404", w.Code)
	}
}

func TestStatic_MissingFile(t *testing.T) {
	srv, _ := testServer(t)
	writeStaticBundle(t, srv)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/cafe_static/missing.js", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("missing file: status = %d, want 404", w.Code)
	}
}

func TestStatic_TraversalRejected(t *testing.T) {
	srv, _ := testServer(t)
	dir := writeStaticBundle(t, srv)

	// Put a file just outside the bundle directory.
	secret := filepath.Join(filepath.Dir(dir), "secret.txt")
	if err := os.WriteFile(secret, []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}

	router := srv.buildRouter()
	req := httptest.NewRequest(http.MethodGet, "/cafe_static/"+url2dots+"/secret.txt", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code == http.StatusOK && strings.Contains(w.Body.String(), "nope") {
		t.Error("path traversal escaped the registered directory")
	}
}

// url2dots keeps the raw traversal sequence out of the literal request path
// so httptest.NewRequest does not normalise it away.
const url2dots = "%2e%2e"

func TestStatic_NonGETRejected(t *testing.T) {
	srv, _ := testServer(t)
	writeStaticBundle(t, srv)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodPost, "/cafe_static/index.html", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("POST to static path: status = %d, want 404", w.Code)
	}
}
