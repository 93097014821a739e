// Package registrar registers bundled frontend panels with the host's panel
// registry.
//
// The registrar locates a built frontend bundle on disk, exposes it through
// the host's static path table, and creates a sidebar panel entry pointing at
// it. Two panel kinds are supported:
//
//   - Custom element: the bundle's content-hashed entry script
//     (assets/index-<hash>.js) is loaded as a JavaScript module, with a
//     cache-busting query parameter so browsers refetch after redeployment.
//   - Iframe: the panel embeds the bundle's index.html directly.
//
// Re-registration is idempotent: any prior panel for the same domain is
// removed best-effort before the new entry is created, so a reload never
// leaves duplicate or stale entries. A bundle with no matching entry script
// degrades that panel (logged, no registry entry) rather than failing the
// host's startup.
//
// The registrar owns no registry state. It calls through the
// frontend.Registry capability and treats every table behind it as
// host-owned.
package registrar
