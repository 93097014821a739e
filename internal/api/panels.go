package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/cafe-host/internal/frontend"
)

// handleListPanels returns the registered panels visible to the caller.
// Admin-gated panels are omitted for non-admin users.
func (s *Server) handleListPanels(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	all := s.panels.ListPanels()
	visible := make([]frontend.Panel, 0, len(all))
	for _, p := range all {
		if p.RequireAdmin && (claims == nil || !claims.Admin) {
			continue
		}
		visible = append(visible, p)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"panels": visible,
		"count":  len(visible),
	})
}

// handleGetPanel returns a single panel by domain.
// Admin-gated panels answer 404 for non-admin users so their existence
// is not leaked.
func (s *Server) handleGetPanel(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")
	claims := claimsFromContext(r.Context())

	panel, err := s.panels.GetPanel(domain)
	if err != nil {
		if errors.Is(err, frontend.ErrPanelNotFound) {
			writeNotFound(w, "panel not found")
			return
		}
		s.logger.Error("get panel failed", "domain", domain, "error", err)
		writeInternalError(w, "failed to get panel")
		return
	}

	if panel.RequireAdmin && (claims == nil || !claims.Admin) {
		writeNotFound(w, "panel not found")
		return
	}

	writeJSON(w, http.StatusOK, panel)
}
