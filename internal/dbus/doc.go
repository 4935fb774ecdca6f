// Package dbus implements the org.freedesktop.Notifications D-Bus interface.
// It provides a server that receives notifications from applications and
// exposes methods for GetCapabilities, Notify, CloseNotification, and
// GetServerInformation per the freedesktop.org notification specification,
// and a Monitor that observes notifications sent to another daemon.
// Notifications are turned into alerts by the caller.
package dbus
