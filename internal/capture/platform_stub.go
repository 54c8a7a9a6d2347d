//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"fmt"
	"image"
)

type unsupportedBackend struct{}

func newBackend() platformBackend {
	return unsupportedBackend{}
}

func (unsupportedBackend) Screens() ([]Screen, error) {
	return nil, fmt.Errorf("screen listing is not supported on this platform")
}

func (unsupportedBackend) Grab(image.Rectangle) (*image.RGBA, error) {
	return nil, fmt.Errorf("screen capture is not supported on this platform")
}

func runningOnWayland() bool { return false }
