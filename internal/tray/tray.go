// Package tray runs the quick-capture tray icon.
package tray

import (
	"log"

	"github.com/getlantern/systray"
	"github.com/ideamans/go-l10n"

	"github.com/example/markshot/assets"
	_ "github.com/example/markshot/internal/i18n"
)

// Tray is a tray icon with Capture and Quit entries.
type Tray struct {
	Hotkey    string
	OnCapture func()
	OnReady   func()
	OnQuit    func()
}

// Item is one menu entry.
type Item struct {
	Title   string
	Tooltip string
}

// Items returns the menu entries in display order.
func (t *Tray) Items() []Item {
	capture := l10n.T("Capture")
	if t.Hotkey != "" {
		capture += " (" + t.Hotkey + ")"
	}
	return []Item{
		{capture, l10n.T("Capture the configured screen")},
		{l10n.T("Quit"), l10n.T("Quit markshot")},
	}
}

// Run blocks until Quit is chosen or Stop is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Stop removes the icon and makes Run return.
func (t *Tray) Stop() {
	systray.Quit()
}

func (t *Tray) onReady() {
	if icon, err := assets.IconPNG(32); err != nil {
		log.Printf("tray icon: %v", err)
	} else {
		systray.SetIcon(icon)
	}
	systray.SetTitle("markshot")
	systray.SetTooltip("markshot")

	items := t.Items()
	mCapture := systray.AddMenuItem(items[0].Title, items[0].Tooltip)
	systray.AddSeparator()
	mQuit := systray.AddMenuItem(items[1].Title, items[1].Tooltip)

	go func() {
		for {
			select {
			case <-mCapture.ClickedCh:
				if t.OnCapture != nil {
					t.OnCapture()
				}
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
	if t.OnReady != nil {
		t.OnReady()
	}
}

func (t *Tray) onExit() {
	if t.OnQuit != nil {
		t.OnQuit()
	}
}
