// Package placement resolves where an alert sits inside its parent.
// It maps one of nine symbolic anchors and an inward margin onto the
// coordinates a host uses to place the alert by anchor.
package placement
