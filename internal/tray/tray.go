// Package tray provides the system tray icon and its desktop menu.
package tray

import (
	"fmt"

	"github.com/getlantern/systray"
)

// Callbacks contains the menu event handlers.
type Callbacks struct {
	OnSwitchDesktop func(n int)
	OnAbout         func()
	OnQuit          func()
}

// AboutText returns the hotkey scheme summary shown by the About entry.
func AboutText() string {
	return "deskhop - numbered virtual desktop switcher\n" +
		"Alt+1..9, Alt+0: switch to desktop 1-10\n" +
		"Alt+Minus: previous desktop\n" +
		"Alt+Shift+1..9, Alt+Shift+0: move window to desktop 1-10\n" +
		"Alt+Shift+`: pin window on all desktops"
}

// Tray manages the system tray icon. The icon shows the current desktop
// number; the menu offers direct switching to any desktop.
type Tray struct {
	callbacks    Callbacks
	desktopItems []*systray.MenuItem
	aboutBtn     *systray.MenuItem
	quitBtn      *systray.MenuItem
}

// New creates a Tray.
func New(callbacks Callbacks) *Tray {
	return &Tray{callbacks: callbacks}
}

// Run starts the system tray loop. Blocks until Quit.
func (t *Tray) Run(onReady func(), onExit func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, onExit)
}

// Quit stops the tray loop.
func (t *Tray) Quit() {
	systray.Quit()
}

// SetDesktop updates the icon and tooltip for the current desktop.
func (t *Tray) SetDesktop(n int) {
	if icon := iconPNG(n); icon != nil {
		systray.SetIcon(icon)
	}
	systray.SetTooltip(fmt.Sprintf("deskhop - desktop %d", n))
}

func (t *Tray) onReady() {
	if icon := iconPNG(1); icon != nil {
		systray.SetIcon(icon)
	}
	systray.SetTitle("deskhop")
	systray.SetTooltip("deskhop")

	t.desktopItems = make([]*systray.MenuItem, 10)
	for i := range t.desktopItems {
		n := i + 1
		t.desktopItems[i] = systray.AddMenuItem(
			fmt.Sprintf("Desktop %d", n),
			fmt.Sprintf("Switch to desktop %d", n),
		)
	}

	systray.AddSeparator()
	t.aboutBtn = systray.AddMenuItem("About", "Show the hotkey scheme")
	t.quitBtn = systray.AddMenuItem("Quit", "Stop the deskhop daemon")

	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	// reflect-free fan-in: one goroutine per desktop item
	for i, item := range t.desktopItems {
		n := i + 1
		go func(item *systray.MenuItem, n int) {
			for range item.ClickedCh {
				if t.callbacks.OnSwitchDesktop != nil {
					t.callbacks.OnSwitchDesktop(n)
				}
			}
		}(item, n)
	}

	for {
		select {
		case <-t.aboutBtn.ClickedCh:
			if t.callbacks.OnAbout != nil {
				t.callbacks.OnAbout()
			}
		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			systray.Quit()
			return
		}
	}
}
