//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"errors"
	"image"
	"sync"
	"testing"
)

func resetInit(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	initErr = nil
	t.Cleanup(func() {
		initOnce = sync.Once{}
		initErr = nil
	})
}

func TestEnsureInitWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	resetInit(t)

	err := WriteImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if !errors.Is(err, errNoDisplay) {
		t.Fatalf("expected errNoDisplay, got %v", err)
	}
}

func TestWriteImagePublishesPNG(t *testing.T) {
	t.Setenv("DISPLAY", ":99")
	resetInit(t)

	var stored []byte
	prevInit, prevWrite, prevRead := clipboardInit, clipboardWrite, clipboardRead
	clipboardInit = func() error { return nil }
	clipboardWrite = func(data []byte) { stored = data }
	clipboardRead = func() []byte { return stored }
	t.Cleanup(func() { clipboardInit, clipboardWrite, clipboardRead = prevInit, prevWrite, prevRead })

	if err := WriteImage(image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	img, err := ReadImage()
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}
