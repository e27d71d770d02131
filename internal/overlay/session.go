package overlay

import (
	"github.com/google/uuid"

	"github.com/animatux/animatux/internal/model"
)

// SessionKey derives the stable window identity for a character source
// path. The key is a pure function of the path so re-enabling a character,
// or reordering the library, reuses the same identity.
func SessionKey(sourcePath string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourcePath)).String()
}

// Session is the ephemeral per-enabled-character presentation state. It is
// never persisted; the character record in the library is the durable side.
type Session struct {
	Key  string
	Path string

	// SettingsOpen tracks whether the live-edit panel is shown.
	SettingsOpen bool

	surface   Surface
	lastSaved *model.Point // last position written through the library
}
