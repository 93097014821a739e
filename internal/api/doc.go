// Package api implements the HTTP and WebSocket server for the C.A.F.E.
// panel host.
//
// This package provides:
//   - Static serving for registered frontend bundles (the static path table
//     owned by the frontend registry)
//   - REST endpoints listing registered sidebar panels
//   - WebSocket push of panels_updated events when the registry changes
//   - JWT authentication with admin gating for admin-only panels
//   - Middleware stack (request ID, logging, recovery, CORS)
//   - TLS support for production deployments
//
// # Architecture
//
// The server sits between browser frontends and the panel registry. Panel
// registrations flow in through the registrar; the server only reads the
// registry and serves what it finds. Any change to the registry is pushed to
// connected WebSocket clients so sidebars refresh without polling.
package api
