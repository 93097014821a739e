package registrar

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// entryScriptPattern matches the content-hashed entry script a frontend
// build produces (e.g. index-D4f7aQ2c.js).
const entryScriptPattern = "index-*.js"

// assetsSubdir is the bundle subdirectory holding hashed build artifacts.
const assetsSubdir = "assets"

// indexPage is the bundle's iframe entry point.
const indexPage = "index.html"

// FindMainScript locates the bundle's entry script under bundleDir/assets.
//
// Files matching index-*.js are candidates; source maps (*.map) are excluded.
// A correctly built bundle produces exactly one candidate. When several exist
// (e.g. leftovers from an unclean redeploy) the lexicographically greatest
// filename is selected so the choice is deterministic across filesystems.
//
// Returns the bare filename, or ErrAssetNotFound when no candidate exists.
func FindMainScript(bundleDir string) (string, error) {
	assetsDir := filepath.Join(bundleDir, assetsSubdir)

	matches, err := filepath.Glob(filepath.Join(assetsDir, entryScriptPattern))
	if err != nil {
		// Only possible with a malformed pattern; treat as no match.
		return "", fmt.Errorf("scanning bundle assets: %w", err)
	}

	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		name := filepath.Base(m)
		if strings.HasSuffix(name, ".map") {
			continue
		}
		candidates = append(candidates, name)
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, assetsDir)
	}

	sort.Strings(candidates)
	return candidates[len(candidates)-1], nil
}

// bundleDiagnostics describes the bundle layout for asset-discovery failure
// logs: the resolved bundle path and whether the assets directory exists.
func bundleDiagnostics(bundleDir string) (resolved string, assetsExist bool) {
	resolved = bundleDir
	if abs, err := filepath.Abs(bundleDir); err == nil {
		resolved = abs
	}

	info, err := os.Stat(filepath.Join(bundleDir, assetsSubdir))
	assetsExist = err == nil && info.IsDir()
	return resolved, assetsExist
}
