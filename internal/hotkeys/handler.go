package hotkeys

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/deskhop/deskhop/internal/platform"
)

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler registers global keyboard grabs on the X server.
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var ignoreModsOnce sync.Once

// NewHandler creates a hotkey handler for the given backend.
func NewHandler(backend platform.Backend) *Handler {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
	}

	// Only a real X connection may consume the once; a handler built
	// without one must not skip mod-ignore setup for later handlers.
	if xu != nil {
		ignoreModsOnce.Do(func() {
			configureIgnoreMods(xu)
		})
	}

	return &Handler{xu: xu, root: root}
}

// Register grabs one binding's key sequence globally. The callback fires
// on the X event loop goroutine with the binding's hotkey id; it must
// hand off to the dispatch loop rather than act directly.
func (h *Handler) Register(binding Binding, fire func(hotkeyID int)) error {
	if h.xu == nil {
		return fmt.Errorf("backend does not expose X11 internals")
	}
	id := binding.ID
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		fire(id)
	}).Connect(h.xu, h.root, binding.Sequence, true)
}

// RegisterAll attempts to register every binding. A binding whose grab
// fails is omitted from the returned table; registration failures are
// per-binding and never fatal. The returned map carries the failures for
// the caller to log.
func (h *Handler) RegisterAll(bindings []Binding, fire func(hotkeyID int)) (*Table, map[Binding]error) {
	failed := make(map[Binding]error)
	registered := make([]Binding, 0, len(bindings))

	for _, binding := range bindings {
		if err := h.Register(binding, fire); err != nil {
			failed[binding] = err
			continue
		}
		registered = append(registered, binding)
	}

	return NewTable(registered), failed
}

// DetachAll drops every key grab this process holds on the root window.
// Used on shutdown.
func (h *Handler) DetachAll() {
	if h.xu == nil {
		return
	}
	keybind.Detach(h.xu, h.root)
}

// configureIgnoreMods makes grabs fire regardless of CapsLock, NumLock
// and ScrollLock state.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	if xu == nil {
		return 0
	}
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
