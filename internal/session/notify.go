package session

import (
	"fmt"

	godbus "github.com/godbus/dbus/v5"
)

const (
	notifyBusName = "org.freedesktop.Notifications"
	notifyPath    = "/org/freedesktop/Notifications"
	notifyIface   = "org.freedesktop.Notifications"
)

// Notification is a desktop notification about a theme event.
type Notification struct {
	Summary string
	Body    string
}

// Notify sends a desktop notification through the session bus.
// Callers treat failures as best-effort: a missing notification daemon
// should never abort a theme installation.
func Notify(n Notification) error {
	conn, err := godbus.SessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}

	obj := conn.Object(notifyBusName, notifyPath)

	var id uint32
	call := obj.Call(notifyIface+".Notify", 0,
		"chromaflow",                // app_name
		uint32(0),                   // replaces_id
		"",                          // app_icon
		n.Summary,                   // summary
		n.Body,                      // body
		[]string{},                  // actions
		map[string]godbus.Variant{}, // hints
		int32(-1),                   // expire_timeout
	)
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	return nil
}
