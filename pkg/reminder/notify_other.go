//go:build !linux

package reminder

import (
	"github.com/gen2brain/beeep"
)

// platformNotify falls back to beeep, which exposes no notification id, so
// tag replacement is not available on this platform.
func platformNotify(replaceID uint32, title, body string) (uint32, error) {
	return 0, beeep.Notify(title, body, "")
}
