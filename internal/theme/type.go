package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidType is returned when an alert type name is not recognized.
var ErrInvalidType = errors.New("invalid alert type")

// Type is the category of an alert. It selects the alert's colors and icon.
type Type int

const (
	Success Type = iota
	Info
	Warning
	Error
)

var typeNames = map[Type]string{
	Success: "success",
	Info:    "info",
	Warning: "warning",
	Error:   "error",
}

// Types returns all alert types.
func Types() []Type {
	return []Type{Success, Info, Warning, Error}
}

// ParseType converts a name such as "warning" into a Type.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "information":
		return Info, nil
	case "warn":
		return Warning, nil
	case "err":
		return Error, nil
	}
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return Info, fmt.Errorf("%w %q, must be one of: success, info, warning, error", ErrInvalidType, s)
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Next returns the following type, wrapping around.
func (t Type) Next() Type {
	return Type((int(t) + 1) % len(typeNames))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
