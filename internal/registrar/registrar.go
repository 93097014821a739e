package registrar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/cafe-host/internal/frontend"
)

// Logger defines the logging interface used by the Registrar.
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

// Registration describes a panel to register.
type Registration struct {
	// Domain is the unique identifier for the panel. It doubles as the
	// sidebar navigation path.
	Domain string

	// Kind selects custom-element or iframe rendering.
	Kind frontend.PanelKind

	// Title is the sidebar title.
	Title string

	// Icon is the sidebar icon identifier (e.g. "mdi:graph").
	Icon string

	// Config is an opaque payload passed through to the frontend component.
	Config map[string]any
}

// Registrar registers frontend bundle panels with the host registry.
//
// The registrar is stateless apart from its dependencies; all registration
// state lives in the host's registry. Register and Unregister are not
// expected to run concurrently for the same domain (the host invokes setup
// and teardown sequentially per integration).
type Registrar struct {
	registry  frontend.Registry
	bundleDir string
	logger    Logger
	now       func() time.Time
}

// New creates a Registrar serving panels from the bundle directory.
func New(registry frontend.Registry, bundleDir string) *Registrar {
	return &Registrar{
		registry:  registry,
		bundleDir: bundleDir,
		logger:    noopLogger{},
		now:       time.Now,
	}
}

// SetLogger sets the logger for the registrar.
func (r *Registrar) SetLogger(logger Logger) {
	r.logger = logger
}

// Register exposes the bundle as a static path and creates a sidebar panel
// for it.
//
// The sequence is:
//  1. Register /<domain>_static -> bundle directory (cache headers off; the
//     bundle's content-hashed filenames provide cache-busting). A prefix
//     that is already registered is treated as a no-op so reloads are
//     idempotent.
//  2. Resolve the panel source URL. Custom-element panels point at the
//     bundle's entry script with a ?v=<unix-seconds> cache-busting
//     parameter; iframe panels point at index.html.
//  3. Best-effort removal of any prior panel for the domain, so a reload
//     never produces a duplicate entry.
//  4. Create the panel entry (always admin-gated).
//
// A bundle with no entry script aborts registration for custom-element
// panels: the condition is logged with diagnostics and nil is returned, so
// the host continues loading with that panel degraded. Registry failures
// other than the documented ignorable ones are returned to the caller.
func (r *Registrar) Register(ctx context.Context, reg Registration) error {
	staticPath := staticPrefix(reg.Domain)

	err := r.registry.RegisterStaticPath(ctx, staticPath, r.bundleDir, false)
	if err != nil && !errors.Is(err, frontend.ErrStaticPathExists) {
		return fmt.Errorf("registering static path for %s: %w", reg.Domain, err)
	}

	sourceURL, componentName, ok := r.resolveSource(reg, staticPath)
	if !ok {
		// Asset discovery failed; already logged. The integration keeps
		// loading without a panel.
		return nil
	}

	// Remove any stale entry from a previous load. Absence is the common
	// case; a failed removal surfaces as ErrPanelExists below if it matters.
	r.tryRemove(ctx, reg.Domain)

	panel := frontend.Panel{
		Domain:        reg.Domain,
		Kind:          reg.Kind,
		ComponentName: componentName,
		URLPath:       reg.Domain,
		SourceURL:     sourceURL,
		Title:         reg.Title,
		Icon:          reg.Icon,
		RequireAdmin:  true,
		Config:        reg.Config,
	}
	if panel.Config == nil {
		panel.Config = map[string]any{}
	}

	if err := r.registry.RegisterPanel(ctx, panel); err != nil {
		return fmt.Errorf("registering panel for %s: %w", reg.Domain, err)
	}

	r.logger.Info("panel registered",
		"domain", reg.Domain,
		"kind", reg.Kind,
		"source_url", sourceURL,
	)
	return nil
}

// Unregister removes the panel for domain from the host registry.
// Removing a panel that does not exist is not an error.
func (r *Registrar) Unregister(ctx context.Context, domain string) error {
	err := r.registry.RemovePanel(ctx, domain)
	if err != nil {
		if errors.Is(err, frontend.ErrPanelNotFound) {
			return nil
		}
		return fmt.Errorf("removing panel for %s: %w", domain, err)
	}
	r.logger.Info("panel unregistered", "domain", domain)
	return nil
}

// resolveSource computes the panel source URL and component name for the
// registration kind. The third return is false when asset discovery failed
// and the registration must be aborted.
func (r *Registrar) resolveSource(reg Registration, staticPath string) (string, string, bool) {
	if reg.Kind == frontend.KindIframe {
		// Iframe bundles are not hot-swapped; no cache-busting needed.
		return staticPath + "/" + indexPage, "iframe", true
	}

	script, err := FindMainScript(r.bundleDir)
	if err != nil {
		resolved, assetsExist := bundleDiagnostics(r.bundleDir)
		r.logger.Error("no entry script found in bundle assets",
			"domain", reg.Domain,
			"bundle_dir", resolved,
			"assets_dir_exists", assetsExist,
			"error", err,
		)
		return "", "", false
	}

	cacheBust := r.now().Unix()
	sourceURL := fmt.Sprintf("%s/%s/%s?v=%d", staticPath, assetsSubdir, script, cacheBust)
	return sourceURL, reg.Domain + "-panel", true
}

// tryRemove attempts to delete any existing panel for domain.
// The result is advisory: a missing entry or a failed removal is logged and
// otherwise ignored, and registration proceeds regardless.
func (r *Registrar) tryRemove(ctx context.Context, domain string) {
	err := r.registry.RemovePanel(ctx, domain)
	switch {
	case err == nil:
		r.logger.Debug("removed existing panel registration", "domain", domain)
	case errors.Is(err, frontend.ErrPanelNotFound):
		// Common case: nothing to clean up.
	default:
		r.logger.Debug("removing existing panel failed", "domain", domain, "error", err)
	}
}

// staticPrefix returns the URL prefix the bundle is served under for domain.
func staticPrefix(domain string) string {
	return "/" + domain + "_static"
}
