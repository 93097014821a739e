package registrar

import "errors"

// Domain errors for the registrar package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, registrar.ErrAssetNotFound) {
//	    // bundle has no entry script
//	}
var (
	// ErrAssetNotFound is returned by asset discovery when no entry script
	// matching index-*.js (excluding source maps) exists in the bundle's
	// assets directory.
	ErrAssetNotFound = errors.New("registrar: no entry script found in bundle assets")
)
