package frontend

import (
	"context"
	"time"
)

// PanelKind identifies how a panel is rendered by the frontend.
type PanelKind string

// Panel kinds.
const (
	// KindCustomElement renders the panel as a custom web component loaded
	// from a JavaScript module URL.
	KindCustomElement PanelKind = "custom_element"

	// KindIframe renders the panel as an embedded iframe pointing at a
	// static HTML page.
	KindIframe PanelKind = "iframe"
)

// Panel is a sidebar panel registration record.
//
// The record is owned by the host's panel registry. Integrations construct a
// Panel and hand it to Registry.RegisterPanel; they never mutate a registered
// record directly.
type Panel struct {
	// Domain is the unique identifier the panel is registered under.
	// At most one panel exists per domain at any time.
	Domain string `json:"domain"`

	// Kind selects custom-element or iframe rendering.
	Kind PanelKind `json:"kind"`

	// ComponentName is the web component tag for custom-element panels
	// (e.g. "flow_automator-panel") or "iframe" for iframe panels.
	ComponentName string `json:"component_name"`

	// URLPath is the sidebar navigation path (frontend_url_path).
	URLPath string `json:"url_path"`

	// SourceURL is the module URL (custom element) or iframe URL the panel
	// loads its content from, including any cache-busting query parameter.
	SourceURL string `json:"source_url"`

	// Title is the sidebar title shown to users.
	Title string `json:"title"`

	// Icon is the sidebar icon identifier (e.g. "mdi:graph").
	Icon string `json:"icon"`

	// RequireAdmin hides the panel from non-admin users.
	RequireAdmin bool `json:"require_admin"`

	// Config is an opaque payload passed through to the frontend component.
	Config map[string]any `json:"config,omitempty"`

	// RegistrationID is assigned by the registry when the panel is created.
	RegistrationID string `json:"registration_id,omitempty"`

	// RegisteredAt is set by the registry when the panel is created.
	RegisteredAt time.Time `json:"registered_at,omitzero"`
}

// StaticPath maps a URL prefix to a directory on disk.
type StaticPath struct {
	// URLPath is the prefix the directory is served under (e.g. "/cafe_static").
	URLPath string `json:"url_path"`

	// Directory is the filesystem directory served at the prefix.
	Directory string `json:"directory"`

	// CacheHeaders enables long-lived cache headers. Content-hashed bundles
	// register with this off and rely on filename hashing instead.
	CacheHeaders bool `json:"cache_headers"`
}

// Registry is the host capability integrations register panels through.
//
// Implementations arbitrate ownership: a domain can hold at most one panel,
// and a URL prefix at most one static path. All methods are safe for
// concurrent use.
type Registry interface {
	// RegisterStaticPath exposes dir at urlPath. Returns ErrStaticPathExists
	// if the prefix is already taken.
	RegisterStaticPath(ctx context.Context, urlPath, dir string, cacheHeaders bool) error

	// RegisterPanel creates a panel registration. Returns ErrPanelExists if
	// the domain already has a panel, or ErrInvalidPanel on a bad record.
	RegisterPanel(ctx context.Context, p Panel) error

	// RemovePanel deletes the panel for domain. Returns ErrPanelNotFound if
	// no panel is registered.
	RemovePanel(ctx context.Context, domain string) error
}
