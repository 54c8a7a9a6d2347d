//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

type x11Backend struct{}

func newBackend() platformBackend {
	return x11Backend{}
}

func runningOnWayland() bool {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")), "wayland") {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

func dial() (*xgb.Conn, *xproto.SetupInfo, *xproto.ScreenInfo, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect X server: %w", err)
	}
	setup := xproto.Setup(conn)
	if setup == nil {
		conn.Close()
		return nil, nil, nil, fmt.Errorf("xproto setup unavailable")
	}
	root := setup.DefaultScreen(conn)
	if root == nil {
		conn.Close()
		return nil, nil, nil, fmt.Errorf("xproto screen unavailable")
	}
	return conn, setup, root, nil
}

func (x11Backend) Screens() ([]Screen, error) {
	conn, _, root, err := dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screens, err := fetchScreens(conn, root.Root)
	if err != nil {
		return nil, err
	}
	if len(screens) == 0 {
		// No randr outputs: treat the whole root window as one screen.
		screens = append(screens, Screen{
			Index:   1,
			Name:    "default",
			Rect:    image.Rect(0, 0, int(root.WidthInPixels), int(root.HeightInPixels)),
			Primary: true,
		})
	}
	return screens, nil
}

func (x11Backend) Grab(rect image.Rectangle) (*image.RGBA, error) {
	conn, setup, root, err := dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	full := image.Rect(0, 0, int(root.WidthInPixels), int(root.HeightInPixels))
	rect = rect.Intersect(full)
	if rect.Empty() {
		return nil, fmt.Errorf("screen outside root window")
	}
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(root.Root),
		int16(rect.Min.X), int16(rect.Min.Y), uint16(rect.Dx()), uint16(rect.Dy()), ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root pixels: %w", err)
	}
	return xImageToRGBA(setup, reply, rect.Dx(), rect.Dy())
}

func fetchScreens(conn *xgb.Conn, root xproto.Window) ([]Screen, error) {
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primaryOutput := randr.Output(0)
	if primary, err := randr.GetOutputPrimary(conn, root).Reply(); err == nil {
		primaryOutput = primary.Output
	}
	screens := make([]Screen, 0, len(res.Outputs))
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		screens = append(screens, Screen{
			Index:   len(screens) + 1,
			Name:    strings.TrimSpace(string(info.Name)),
			Rect:    image.Rect(int(crtc.X), int(crtc.Y), int(crtc.X)+int(crtc.Width), int(crtc.Y)+int(crtc.Height)),
			Primary: output == primaryOutput,
		})
	}
	return screens, nil
}
