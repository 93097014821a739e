package api

import (
	"net/http"
	"path/filepath"
	"strings"
)

// handleStatic serves files from registered static paths. Any request that
// no API route claimed lands here; the path is resolved against the static
// path table via longest-prefix match.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeNotFound(w, "not found")
		return
	}

	sp, rel, ok := s.panels.LookupStatic(r.URL.Path)
	if !ok {
		writeNotFound(w, "not found")
		return
	}

	// Reject traversal before touching the filesystem. The cleaned relative
	// path must stay inside the registered directory.
	rel = filepath.Clean("/" + rel)
	if strings.Contains(rel, "..") {
		writeNotFound(w, "not found")
		return
	}
	if rel == "/" || rel == "." {
		// Bare prefix serves the bundle's entry page.
		rel = "/index.html"
	}

	if !sp.CacheHeaders {
		// Content-hashed filenames carry their own cache-busting; keep the
		// mutable entry points out of browser caches.
		w.Header().Set("Cache-Control", "no-cache, must-revalidate")
	}

	http.ServeFile(w, r, filepath.Join(sp.Directory, rel))
}
