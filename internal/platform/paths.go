package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// AppDirName is the per-user configuration directory name.
const AppDirName = "animatux"

// ConfigDir returns the application configuration directory, creating
// nothing. Falls back to the current directory when the OS config dir
// cannot be determined.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return AppDirName
	}
	return filepath.Join(base, AppDirName)
}

// SettingsPath returns the path of the persisted AppSettings snapshot.
func SettingsPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

// LibraryPath returns the path of the persisted character library snapshot.
func LibraryPath() string {
	return filepath.Join(ConfigDir(), "library.json")
}

// LogPath returns the path of the append-only application log file.
func LogPath() string {
	return filepath.Join(ConfigDir(), AppDirName+".log")
}

// WorkshopContentDir returns the Steam Workshop content directory for the
// given app identifier, following the platform Steam install layout.
func WorkshopContentDir(appID string) string {
	switch runtime.GOOS {
	case OSWindows:
		return filepath.Join(`C:\Program Files (x86)\Steam`, "steamapps", "workshop", "content", appID)
	case OSDarwin:
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		return filepath.Join(home, "Library", "Application Support", "Steam", "steamapps", "workshop", "content", appID)
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		return filepath.Join(home, ".local", "share", "Steam", "steamapps", "workshop", "content", appID)
	}
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}
