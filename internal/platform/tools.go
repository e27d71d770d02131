package platform

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Well-known installation directories probed before falling back to PATH.
// Homebrew first so an up-to-date user install wins over a system binary.
var toolProbeDirs = []string{
	"/opt/homebrew/bin",
	"/usr/local/bin",
	"/usr/bin",
}

// FindTool resolves the path of an external tool binary. It probes the
// well-known install directories, then PATH; if both miss it returns the
// bare name so the OS resolves (or the spawn fails) at exec time.
func FindTool(name string) string {
	for _, dir := range toolProbeDirs {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path
	}

	return name
}

// HasTool reports whether the tool was actually located, as opposed to
// FindTool's bare-name fallback.
func HasTool(name string) bool {
	for _, dir := range toolProbeDirs {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	_, err := exec.LookPath(name)
	return err == nil
}
