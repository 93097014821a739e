package frontend

import "errors"

// Domain errors for the frontend package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, frontend.ErrPanelNotFound) {
//	    // handle not found case
//	}
var (
	// ErrPanelNotFound is returned when no panel is registered for a domain.
	ErrPanelNotFound = errors.New("frontend: panel not found")

	// ErrPanelExists is returned when registering a panel for a domain that
	// already has one.
	ErrPanelExists = errors.New("frontend: panel already registered")

	// ErrStaticPathExists is returned when registering a static path whose
	// URL prefix is already taken.
	ErrStaticPathExists = errors.New("frontend: static path already registered")

	// ErrInvalidPanel is returned when a panel record fails validation.
	ErrInvalidPanel = errors.New("frontend: invalid panel")
)
