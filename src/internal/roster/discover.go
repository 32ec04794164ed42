package roster

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// DefaultMatch selects roster exports when discovering inputs in a directory.
const DefaultMatch = "*.{csv,xlsx}"

// Discover lists the regular files directly under dir whose base name matches
// pattern, sorted by name. Sorting keeps repeated runs appending in the same order.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultMatch
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid match pattern %q: %w", pattern, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !g.Match(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}
