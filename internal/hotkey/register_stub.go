//go:build !((linux && cgo) || (darwin && cgo) || windows)

package hotkey

import "context"

func listen(context.Context, Binding, func()) error {
	return ErrUnsupported
}

// Run calls fn directly.
func Run(fn func()) {
	fn()
}
