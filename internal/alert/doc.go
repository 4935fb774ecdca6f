// Package alert implements transient toast alerts over a host toolkit.
//
// A Generator bound to a Parent container sends alerts. Each Alert fits its
// text to the width it is given, places itself at an anchor inside the parent
// and is destroyed after its duration. Hosts call Alert.Relayout whenever the
// parent is resized; the alert keeps its original text so every layout pass
// starts from the full message.
package alert
