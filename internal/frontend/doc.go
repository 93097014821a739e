// Package frontend owns the host's panel registry and static path table.
//
// This package provides:
//   - The Registry capability that the panel registrar calls through
//     (static path registration, panel create/remove)
//   - Store, the in-process implementation backing the HTTP layer
//   - Change notifications so connected UI clients can be told when the
//     set of panels changes
//
// The panel and static path tables are host-owned state. Integrations never
// hold this state themselves; they issue create/remove requests through the
// Registry interface and the host arbitrates.
//
// Thread Safety: all Store methods are safe for concurrent use.
package frontend
