package alert

import (
	"time"

	"github.com/jmylchreest/alertkit/internal/placement"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// ParentKind identifies the kind of container an alert is placed in.
type ParentKind int

const (
	KindWindow ParentKind = iota + 1
	KindFrame
	KindSubWindow
)

// SupportedKinds lists the container kinds a Generator accepts.
var SupportedKinds = []ParentKind{KindWindow, KindFrame, KindSubWindow}

func (k ParentKind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindFrame:
		return "frame"
	case KindSubWindow:
		return "sub-window"
	default:
		return "unknown"
	}
}

// Supported reports whether alerts can be placed in containers of kind k.
func (k ParentKind) Supported() bool {
	for _, s := range SupportedKinds {
		if k == s {
			return true
		}
	}
	return false
}

// Parent is the live, resizable container alerts are placed in.
type Parent interface {
	Kind() ParentKind
	// Size returns the current width and height of the container.
	Size() (width, height int)
	// Measure returns the rendered width of text in the alert font.
	Measure(text string) int
	// IconWidth returns the width a surface gives icon beside the text,
	// including any gap between them.
	IconWidth(icon string) int
	// NewSurface creates the widget an alert renders into.
	NewSurface(id string, design theme.Design) Surface
}

// Surface is the rendered widget of a single alert.
type Surface interface {
	SetText(text string)
	// Place positions the widget so its own anchor point lands on (X, Y)
	// and sizes it to RelativeWidth of the parent width.
	Place(p placement.Result)
	Destroy()
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	Schedule(d time.Duration, fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func())

// Schedule calls f(d, fn).
func (f SchedulerFunc) Schedule(d time.Duration, fn func()) {
	f(d, fn)
}

// TimerScheduler schedules with time.AfterFunc. Callbacks run on their own
// goroutine; hosts with an event loop should provide their own Scheduler.
var TimerScheduler = SchedulerFunc(func(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
})
