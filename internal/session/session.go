// Package session inspects the desktop session and sends notifications
// about theme events.
package session

import (
	"fmt"

	godbus "github.com/godbus/dbus/v5"
	"github.com/mitchellh/go-ps"
)

const shellBusName = "org.gnome.Shell"

// shellProcessNames are the executables that indicate a running GNOME Shell.
var shellProcessNames = []string{"gnome-shell"}

// ShellRunning reports whether GNOME Shell owns the current session.
// It asks the session bus first and falls back to a process scan when the
// bus is unavailable (e.g. over SSH without DBUS_SESSION_BUS_ADDRESS).
func ShellRunning() bool {
	if owned, err := busNameOwned(shellBusName); err == nil {
		return owned
	}
	return shellProcessRunning()
}

// busNameOwned asks the session bus whether name currently has an owner.
func busNameOwned(name string) (bool, error) {
	conn, err := godbus.SessionBus()
	if err != nil {
		return false, fmt.Errorf("connect session bus: %w", err)
	}

	var owned bool
	obj := conn.Object("org.freedesktop.DBus", "/org/freedesktop/DBus")
	if err := obj.Call("org.freedesktop.DBus.NameHasOwner", 0, name).Store(&owned); err != nil {
		return false, fmt.Errorf("query name owner: %w", err)
	}
	return owned, nil
}

// shellProcessRunning scans the process table for a GNOME Shell executable.
func shellProcessRunning() bool {
	processes, err := ps.Processes()
	if err != nil {
		return false
	}

	for _, p := range processes {
		for _, name := range shellProcessNames {
			if p.Executable() == name {
				return true
			}
		}
	}
	return false
}
