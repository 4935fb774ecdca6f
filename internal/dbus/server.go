package dbus

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the bus name alertkit listen claims.
	DBusBusName = "org.freedesktop.Notifications"
)

// ErrNameTaken is returned by Start when another daemon owns the bus name.
var ErrNameTaken = errors.New("notification bus name already taken")

// NotificationHandler receives a notification to show as an alert under id.
type NotificationHandler func(notification *DBusNotification, id uint32)

// CloseHandler removes the alert shown for id.
type CloseHandler func(id uint32)

// NotificationServer turns org.freedesktop.Notifications calls into alerts.
// It hands out notification IDs and remembers the stack tag of every alert
// still on screen so a tagged notification replaces its predecessor.
type NotificationServer struct {
	conn   *dbus.Conn
	logger *slog.Logger
	nextID atomic.Uint32

	notifyHandler NotificationHandler
	closeHandler  CloseHandler

	mu         sync.RWMutex
	active     map[uint32]string // id -> stack tag
	serverInfo ServerInfo
	running    bool
	stopCh     chan struct{}
}

// NewNotificationServer returns a server that is not yet on the bus.
func NewNotificationServer(logger *slog.Logger) *NotificationServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationServer{
		logger:     logger,
		active:     make(map[uint32]string),
		serverInfo: DefaultServerInfo(),
		stopCh:     make(chan struct{}),
	}
}

// SetNotifyHandler must be called before Start.
func (s *NotificationServer) SetNotifyHandler(handler NotificationHandler) {
	s.notifyHandler = handler
}

// SetCloseHandler must be called before Start.
func (s *NotificationServer) SetCloseHandler(handler CloseHandler) {
	s.closeHandler = handler
}

// SetServerInfo sets what GetServerInformation reports.
func (s *NotificationServer) SetServerInfo(info ServerInfo) {
	s.serverInfo = info
}

// Start exports the server on the session bus and claims the bus name.
func (s *NotificationServer) Start() error {
	s.mu.RLock()
	running := s.running
	s.mu.RUnlock()
	if running {
		return errors.New("server already running")
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}
	if err := conn.Export(introspect.NewIntrospectable(introspectNode()), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue|dbus.NameFlagReplaceExisting)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("%w: %s", ErrNameTaken, DBusBusName)
	}

	s.mu.Lock()
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	s.logger.Info("listening for notifications", "bus_name", DBusBusName, "path", DBusPath)
	return nil
}

// Stop gives up the bus name. The shared session connection stays open.
func (s *NotificationServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	close(s.stopCh)
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
	}

	s.logger.Info("stopped listening for notifications")
	return nil
}

// Done is closed when the server stops.
func (s *NotificationServer) Done() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopCh
}

// GetCapabilities implements GetCapabilities() -> as.
func (s *NotificationServer) GetCapabilities() ([]string, *dbus.Error) {
	return ServerCapabilities, nil
}

// GetServerInformation implements GetServerInformation() -> (ssss).
func (s *NotificationServer) GetServerInformation() (string, string, string, string, *dbus.Error) {
	info := s.serverInfo
	return info.Name, info.Vendor, info.Version, info.SpecVersion, nil
}

// Notify implements Notify(susssasa{sv}i) -> u.
//
// The alert keeps the ID of the notification it replaces: replacesID when
// set, otherwise the active notification with the same stack tag.
func (s *NotificationServer) Notify(
	appName string,
	replacesID uint32,
	appIcon string,
	summary string,
	body string,
	actions []string,
	hints map[string]dbus.Variant,
	expireTimeout int32,
) (uint32, *dbus.Error) {
	n := &DBusNotification{
		AppName:       appName,
		ReplacesID:    replacesID,
		AppIcon:       appIcon,
		Summary:       summary,
		Body:          body,
		Actions:       actions,
		Hints:         hints,
		ExpireTimeout: expireTimeout,
	}

	id := s.track(replacesID, n.StackTag())
	s.logger.Debug("notification received",
		"id", id,
		"app", appName,
		"summary", summary,
		"replaces", replacesID,
		"expire_timeout", expireTimeout,
	)

	if s.notifyHandler != nil {
		s.notifyHandler(n, id)
	}
	return id, nil
}

// track records a notification as shown and returns its ID.
func (s *NotificationServer) track(replacesID uint32, tag string) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := replacesID
	if id == 0 && tag != "" {
		for activeID, activeTag := range s.active {
			if activeTag == tag {
				id = activeID
				break
			}
		}
	}
	if id == 0 {
		id = s.nextID.Add(1)
	}
	s.active[id] = tag
	return id
}

// CloseNotification implements CloseNotification(u). Unknown IDs are
// ignored. NotificationClosed follows once the host reports the alert gone
// through CloseWithReason.
func (s *NotificationServer) CloseNotification(id uint32) *dbus.Error {
	s.logger.Debug("close requested", "id", id)
	if s.IsActive(id) && s.closeHandler != nil {
		s.closeHandler(id)
	}
	return nil
}

// MarkClosed forgets id and reports whether it was on screen.
func (s *NotificationServer) MarkClosed(id uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[id]
	delete(s.active, id)
	return ok
}

// IsActive reports whether the alert for id is still on screen.
func (s *NotificationServer) IsActive(id uint32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.active[id]
	return ok
}

// ActiveCount returns the number of notifications on screen.
func (s *NotificationServer) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}

func introspectNode() *introspect.Node {
	return &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: notificationMethods(),
				Signals: notificationSignals(),
			},
		},
	}
}

func notificationMethods() []introspect.Method {
	out := func(name, typ string) introspect.Arg {
		return introspect.Arg{Name: name, Type: typ, Direction: "out"}
	}
	in := func(name, typ string) introspect.Arg {
		return introspect.Arg{Name: name, Type: typ, Direction: "in"}
	}

	return []introspect.Method{
		{
			Name: "GetCapabilities",
			Args: []introspect.Arg{out("capabilities", "as")},
		},
		{
			Name: "GetServerInformation",
			Args: []introspect.Arg{
				out("name", "s"),
				out("vendor", "s"),
				out("version", "s"),
				out("spec_version", "s"),
			},
		},
		{
			Name: "Notify",
			Args: []introspect.Arg{
				in("app_name", "s"),
				in("replaces_id", "u"),
				in("app_icon", "s"),
				in("summary", "s"),
				in("body", "s"),
				in("actions", "as"),
				in("hints", "a{sv}"),
				in("expire_timeout", "i"),
				out("id", "u"),
			},
		},
		{
			Name: "CloseNotification",
			Args: []introspect.Arg{in("id", "u")},
		},
	}
}

func notificationSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "NotificationClosed",
			Args: []introspect.Arg{
				{Name: "id", Type: "u"},
				{Name: "reason", Type: "u"},
			},
		},
	}
}
