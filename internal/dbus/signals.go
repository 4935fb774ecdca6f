package dbus

import (
	"fmt"
)

// EmitNotificationClosed emits the NotificationClosed signal.
// This signal is emitted when a notification is closed, either by timeout,
// user dismissal, or explicit close request.
func (s *NotificationServer) EmitNotificationClosed(id uint32, reason CloseReason) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(DBusPath, DBusInterface+".NotificationClosed", id, uint32(reason))
	if err != nil {
		return fmt.Errorf("failed to emit NotificationClosed signal: %w", err)
	}

	s.logger.Debug("emitted NotificationClosed signal", "id", id, "reason", reason.String())
	return nil
}

// CloseWithReason marks an active notification closed and emits the
// signal. Unknown or already closed IDs are ignored.
func (s *NotificationServer) CloseWithReason(id uint32, reason CloseReason) error {
	if !s.MarkClosed(id) {
		return nil
	}
	return s.EmitNotificationClosed(id, reason)
}
