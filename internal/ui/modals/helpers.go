package modals

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxPathSuggestions caps how many directory entries the attach modal offers.
const maxPathSuggestions = 200

// TruncatePath truncates a path from the beginning with ellipsis
func TruncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// TruncateString truncates a string from the end with ellipsis
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// pathSuggestions lists the entries of dir as input suggestions. Directories
// get a trailing separator so completing one keeps the user typing inside it.
// Hidden entries are skipped. Unreadable directories yield no suggestions.
func pathSuggestions(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			name += string(filepath.Separator)
		}
		out = append(out, name)
		if len(out) >= maxPathSuggestions {
			break
		}
	}
	sort.Strings(out)
	return out
}
