package capture

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"
)

func stubScreens(t *testing.T, screens []Screen, err error) {
	t.Helper()
	prev := listScreensFn
	listScreensFn = func() ([]Screen, error) { return screens, err }
	t.Cleanup(func() { listScreensFn = prev })
}

func stubCapture(t *testing.T, got *Screen) {
	t.Helper()
	prev := captureScreenFn
	captureScreenFn = func(s Screen) (*image.RGBA, error) {
		*got = s
		return image.NewRGBA(image.Rect(0, 0, s.Rect.Dx(), s.Rect.Dy())), nil
	}
	t.Cleanup(func() { captureScreenFn = prev })
}

var layout = []Screen{
	{Index: 1, Name: "DP-1", Rect: image.Rect(0, 0, 1920, 1080)},
	{Index: 2, Name: "HDMI-1", Rect: image.Rect(1920, 0, 3200, 1024), Primary: true},
}

func TestScreensEmpty(t *testing.T) {
	stubScreens(t, nil, nil)
	if _, err := Screens(); !errors.Is(err, ErrNoScreens) {
		t.Fatalf("err = %v, want ErrNoScreens", err)
	}
}

func TestFindScreen(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"first", 1, "DP-1"},
		{"second", 2, "HDMI-1"},
		{"unknown falls back", 7, "DP-1"},
		{"zero picks primary", 0, "HDMI-1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := FindScreen(layout, tc.index)
			if err != nil {
				t.Fatalf("FindScreen: %v", err)
			}
			if s.Name != tc.want {
				t.Fatalf("got %q, want %q", s.Name, tc.want)
			}
		})
	}
	if _, err := FindScreen(nil, 1); !errors.Is(err, ErrNoScreens) {
		t.Fatalf("err = %v, want ErrNoScreens", err)
	}
}

func TestCaptureSelectsScreen(t *testing.T) {
	stubScreens(t, layout, nil)
	var got Screen
	stubCapture(t, &got)

	img, screen, err := Capture(context.Background(), 2, Delay(time.Millisecond))
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if screen.Name != "HDMI-1" || got.Name != "HDMI-1" {
		t.Fatalf("captured %q, want HDMI-1", got.Name)
	}
	if img.Bounds().Dx() != 1280 || img.Bounds().Dy() != 1024 {
		t.Fatalf("size = %v", img.Bounds())
	}
}

func TestCaptureCancelled(t *testing.T) {
	stubScreens(t, layout, nil)
	var got Screen
	stubCapture(t, &got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Capture(ctx, 1, DelayTen); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got.Name != "" {
		t.Fatalf("screen grabbed after cancellation")
	}
}

func TestCaptureWrapsError(t *testing.T) {
	stubScreens(t, layout, nil)
	boom := errors.New("boom")
	prev := captureScreenFn
	captureScreenFn = func(Screen) (*image.RGBA, error) { return nil, boom }
	t.Cleanup(func() { captureScreenFn = prev })

	if _, _, err := Capture(context.Background(), 1, Delay(0)); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestParseDelay(t *testing.T) {
	tests := []struct {
		in      string
		want    Delay
		wantErr bool
	}{
		{"", DelayNone, false},
		{"none", DelayNone, false},
		{"3", DelayThree, false},
		{"5s", DelayFive, false},
		{" 10S ", DelayTen, false},
		{"7", DelayNone, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDelay(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
	for _, d := range Delays {
		back, err := ParseDelay(d.String())
		if err != nil || back != d {
			t.Fatalf("ParseDelay(%q) = %v, %v", d.String(), back, err)
		}
	}
}

func TestCropToRect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	src.Pix[src.PixOffset(60, 10)] = 0xAB
	got, err := cropToRect(src, image.Rect(50, 0, 150, 50))
	if err != nil {
		t.Fatalf("cropToRect: %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, 50, 50) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if got.Pix[got.PixOffset(10, 10)] != 0xAB {
		t.Fatalf("pixel not copied")
	}
	if _, err := cropToRect(src, image.Rect(200, 200, 300, 300)); err == nil {
		t.Fatalf("expected error for disjoint screen")
	}
}

func TestScreenString(t *testing.T) {
	want := "2: HDMI-1 1280x1024+1920+0 (primary)"
	if got := layout[1].String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
