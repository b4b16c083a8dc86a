package cli

import (
	"path/filepath"
	"strings"
)

// projectName derives a project name from its file path:
// "out/game1.tapemark.json" becomes "game1".
func projectName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, ".tapemark")
	if base == "" {
		return "untitled"
	}
	return base
}
