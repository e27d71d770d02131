package model

import (
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the playable media extensions, lower case with
// leading dot. APNG entries are converted to animated WebP before display.
var SupportedExtensions = []string{".png", ".apng", ".webp", ".gif"}

// IsSupportedMedia reports whether the path has a supported media extension.
// The check is case-insensitive.
func IsSupportedMedia(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// IsAPNG reports whether the path names an animated PNG by extension.
func IsAPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".apng")
}

// IsValidMediaFile reports whether a directory entry name is acceptable as
// downloaded character media. Hidden files and macOS Finder metadata are
// rejected on top of the extension check.
func IsValidMediaFile(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, ".") {
		return false
	}
	if lower == "ds_store" {
		return false
	}
	return IsSupportedMedia(lower)
}
