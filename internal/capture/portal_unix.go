//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"fmt"
	"image"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/example/markshot/internal/imageio"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalResponse  = "org.freedesktop.portal.Request.Response"
	portalWaitLimit = 30 * time.Second
)

var portalHandleToken = func() string {
	return fmt.Sprintf("markshot_%d", time.Now().UnixNano())
}

func portalScreenshot() (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Printf("dbus close: %v", cerr)
		}
	}()

	obj := conn.Object(portalDest, portalPath)
	var handle dbus.ObjectPath
	call := obj.Call("org.freedesktop.portal.Screenshot.Screenshot", 0, "", portalScreenshotOptions())
	if call.Err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot response: %w", err)
	}

	sigc := make(chan *dbus.Signal, 1)
	conn.Signal(sigc)
	rule := fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", handle)
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	timeout := time.After(portalWaitLimit)
	for {
		select {
		case sig := <-sigc:
			if sig == nil || sig.Path != handle || sig.Name != portalResponse {
				continue
			}
			path, err := portalResult(sig.Body)
			if err != nil {
				return nil, err
			}
			return loadAndRemove(path)
		case <-timeout:
			return nil, fmt.Errorf("portal screenshot: no response after %s", portalWaitLimit)
		}
	}
}

func portalScreenshotOptions() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(false),
		"modal":        dbus.MakeVariant(false),
		"handle_token": dbus.MakeVariant(portalHandleToken()),
	}
}

// portalResult extracts the file path from a Request.Response body.
func portalResult(body []interface{}) (string, error) {
	if len(body) < 2 {
		return "", fmt.Errorf("portal screenshot: short response")
	}
	if code, ok := body[0].(uint32); ok && code != 0 {
		return "", fmt.Errorf("portal screenshot: request denied (code %d)", code)
	}
	res, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", fmt.Errorf("portal screenshot: unexpected response %T", body[1])
	}
	uriVar, ok := res["uri"]
	if !ok {
		return "", fmt.Errorf("portal screenshot: response missing image data")
	}
	uri, ok := uriVar.Value().(string)
	if !ok {
		return "", fmt.Errorf("portal screenshot: uri is %T", uriVar.Value())
	}
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", fmt.Errorf("portal screenshot: unsupported uri %q", uri)
	}
	return u.Path, nil
}

func loadAndRemove(path string) (*image.RGBA, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("remove %s: %v", path, err)
		}
	}()
	img, err := imageio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot image: %w", err)
	}
	return img, nil
}
