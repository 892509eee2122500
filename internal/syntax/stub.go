//go:build !cgo

package syntax

// Available reports whether tree parsing is compiled in.
// Returns false when CGO is disabled.
func Available() bool {
	return false
}
