// Ancillary-file resolution: given a name and a list of search-path
// prefixes, return the first existing match. Absolute paths bypass the
// search list entirely.

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveFile locates name against the search path. Used by the loaders, not
// by the kernel proper.
func ResolveFile(name string, searchPath []string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty file name")
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("resolving %q: %w", name, err)
		}
		return name, nil
	}
	// A plain relative path is tried as-is first, then under each prefix.
	candidates := append([]string{"."}, searchPath...)
	for _, prefix := range candidates {
		candidate := filepath.Join(prefix, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("file %q not found (search path: %s)", name, strings.Join(searchPath, ", "))
}
