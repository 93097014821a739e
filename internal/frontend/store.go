package frontend

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger defines the logging interface used by the Store.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Store is the in-process panel registry and static path table.
//
// It implements Registry for integrations and exposes the read side
// (GetPanel, ListPanels, LookupStatic) to the HTTP layer. Change listeners
// registered with Subscribe are invoked after every successful panel
// create/remove so the WebSocket hub can push updates to connected clients.
//
// All public methods are thread-safe.
type Store struct {
	mu        sync.RWMutex
	panels    map[string]*Panel     // by domain
	static    map[string]StaticPath // by URL prefix
	listeners []func()
	logger    Logger
	now       func() time.Time
}

// NewStore creates an empty panel registry.
func NewStore() *Store {
	return &Store{
		panels: make(map[string]*Panel),
		static: make(map[string]StaticPath),
		logger: noopLogger{},
		now:    time.Now,
	}
}

// SetLogger sets the logger for the store.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// Subscribe registers a listener invoked after every panel change.
// Listeners must not block; they run on the caller's goroutine.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// RegisterStaticPath implements Registry.
func (s *Store) RegisterStaticPath(ctx context.Context, urlPath, dir string, cacheHeaders bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("register static path: %w", err)
	}
	if urlPath == "" || !strings.HasPrefix(urlPath, "/") {
		return fmt.Errorf("%w: static path %q must start with /", ErrInvalidPanel, urlPath)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.static[urlPath]; ok {
		return fmt.Errorf("%w: %s -> %s", ErrStaticPathExists, urlPath, existing.Directory)
	}

	s.static[urlPath] = StaticPath{
		URLPath:      urlPath,
		Directory:    dir,
		CacheHeaders: cacheHeaders,
	}
	s.logger.Debug("static path registered", "url_path", urlPath, "directory", dir)
	return nil
}

// RegisterPanel implements Registry.
func (s *Store) RegisterPanel(ctx context.Context, p Panel) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("register panel: %w", err)
	}
	if err := validatePanel(p); err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.panels[p.Domain]; ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPanelExists, p.Domain)
	}

	p.RegistrationID = uuid.NewString()
	p.RegisteredAt = s.now().UTC()
	s.panels[p.Domain] = &p
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	s.logger.Info("panel registered",
		"domain", p.Domain,
		"kind", p.Kind,
		"url_path", p.URLPath,
		"source_url", p.SourceURL,
	)
	notify(listeners)
	return nil
}

// RemovePanel implements Registry.
func (s *Store) RemovePanel(ctx context.Context, domain string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("remove panel: %w", err)
	}

	s.mu.Lock()
	_, ok := s.panels[domain]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPanelNotFound, domain)
	}
	delete(s.panels, domain)
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	s.logger.Info("panel removed", "domain", domain)
	notify(listeners)
	return nil
}

// GetPanel returns the panel registered for domain.
// Returns ErrPanelNotFound if no panel exists. The returned panel is a copy;
// callers can safely modify it.
func (s *Store) GetPanel(domain string) (*Panel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.panels[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPanelNotFound, domain)
	}
	cp := clonePanel(p)
	return &cp, nil
}

// ListPanels returns all registered panels sorted by domain.
// The returned panels are copies; callers can safely modify them.
func (s *Store) ListPanels() []Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	panels := make([]Panel, 0, len(s.panels))
	for _, p := range s.panels {
		panels = append(panels, clonePanel(p))
	}
	sort.Slice(panels, func(i, j int) bool { return panels[i].Domain < panels[j].Domain })
	return panels
}

// PanelCount returns the number of registered panels.
func (s *Store) PanelCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.panels)
}

// LookupStatic resolves a request path against the static path table using
// longest-prefix match. The second return is the path remainder relative to
// the matched prefix, cleaned of its leading slash.
func (s *Store) LookupStatic(requestPath string) (StaticPath, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best StaticPath
	found := false
	for prefix, sp := range s.static {
		if requestPath == prefix || strings.HasPrefix(requestPath, prefix+"/") {
			if !found || len(prefix) > len(best.URLPath) {
				best = sp
				found = true
			}
		}
	}
	if !found {
		return StaticPath{}, "", false
	}

	rel := strings.TrimPrefix(requestPath, best.URLPath)
	rel = strings.TrimPrefix(rel, "/")
	return best, rel, true
}

// validatePanel checks the fields an integration must supply.
func validatePanel(p Panel) error {
	switch {
	case p.Domain == "":
		return fmt.Errorf("%w: domain is required", ErrInvalidPanel)
	case p.Kind != KindCustomElement && p.Kind != KindIframe:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPanel, p.Kind)
	case p.ComponentName == "":
		return fmt.Errorf("%w: component name is required", ErrInvalidPanel)
	case p.SourceURL == "":
		return fmt.Errorf("%w: source URL is required", ErrInvalidPanel)
	}
	return nil
}

// clonePanel copies a panel, including its Config map, so callers can
// modify the result without reaching into stored state.
func clonePanel(p *Panel) Panel {
	cp := *p
	cp.Config = maps.Clone(p.Config)
	return cp
}

// notify invokes change listeners outside the store lock.
func notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
