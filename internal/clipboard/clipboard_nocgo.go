//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"image"
	"os"
	"sync"
)

var (
	initOnce       sync.Once
	initErr        error
	errNoDisplay   = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errCGODisabled = errors.New("clipboard operations require cgo support")
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != "" {
			initErr = errCGODisabled
			return
		}
		initErr = errNoDisplay
	})
	return initErr
}

func WriteImage(image.Image) error {
	return ensureInit()
}

func ReadImage() (image.Image, error) {
	return nil, ensureInit()
}
