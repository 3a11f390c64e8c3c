//go:build linux

package reminder

import (
	"github.com/godbus/dbus/v5"
)

const notifyAppName = "daybook"

// platformNotify posts via org.freedesktop.Notifications. Passing the
// previous notification id as replaces_id makes the server replace that
// notification instead of stacking a duplicate.
func platformNotify(replaceID uint32, title, body string) (uint32, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return 0, err
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		notifyAppName, replaceID, "", title, body,
		[]string{}, map[string]dbus.Variant{}, int32(-1))
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}
