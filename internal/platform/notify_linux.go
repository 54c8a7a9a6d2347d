//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

// Notify sends a desktop notification using the Freedesktop.org notification spec.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		AppName, uint32(0), opts.IconPath, title, body, []string{}, hints(opts), opts.expiry())
	return call.Err
}

func hints(opts Options) map[string]dbus.Variant {
	urgency := byte(1)
	if opts.Critical {
		urgency = 2
	}
	return map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgency)}
}
