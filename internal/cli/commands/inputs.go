package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandInputs expands glob patterns (including **) in positional
// arguments to concrete source files. Plain paths are passed through
// unchanged so a missing file is reported by the pipeline. Duplicates are
// removed, keeping the first occurrence.
func ExpandInputs(args []string) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)

	for _, arg := range args {
		paths := []string{arg}
		if containsGlob(arg) {
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("resolve pattern %q: %w", arg, err)
			}
			paths = paths[:0]
			for _, m := range matches {
				if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
					paths = append(paths, m)
				}
			}
			if len(paths) == 0 {
				return nil, fmt.Errorf("no files match pattern: %s", arg)
			}
		}

		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				inputs = append(inputs, p)
			}
		}
	}
	return inputs, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
