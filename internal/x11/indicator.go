package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
)

const (
	indicatorBackground = 0x101418 // near-black panel background
	indicatorForeground = 0xf5f7fa // light digit color
)

// indicatorOpacity is ~70% of the full CARDINAL range, applied via
// _NET_WM_WINDOW_OPACITY for compositing window managers.
const indicatorOpacity = uint32(0xFFFFFFFF * 7 / 10)

var (
	shapeInitOnce sync.Once
	shapeInitErr  error
)

// Indicator is a transient override-redirect window showing a desktop
// number near a monitor corner. It bypasses the window manager, stays on
// top, ignores input, and is destroyed either by its overlay batch timer
// or an explicit cancel.
type Indicator struct {
	conn   *Connection
	win    xproto.Window
	pixmap xproto.Pixmap
}

// CreateIndicator creates and maps an indicator window at (x, y) showing
// the given digit label.
func (c *Connection) CreateIndicator(label string, x, y int) (*Indicator, error) {
	glyphs, glyphW, glyphH := labelRects(label)
	if len(glyphs) == 0 {
		return nil, fmt.Errorf("indicator label %q has no digits", label)
	}

	width := glyphW + 2*indicatorMargin
	height := glyphH + 2*indicatorMargin

	conn := c.XUtil.Conn()
	screen := c.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate indicator window id: %w", err)
	}

	// Create window with override_redirect=true so it bypasses the
	// window manager.
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		c.Root,
		int16(x), int16(y),
		uint16(width), uint16(height),
		0, // border_width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect,
		// Value list order follows the bit positions of the mask (low -> high).
		[]uint32{indicatorBackground, 1},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create indicator window: %w", err)
	}

	ind := &Indicator{conn: c, win: wid}

	// Render the digits into a pixmap and install it as the window
	// background, so the server repaints on expose without us owning an
	// event loop for the window.
	pixmap, err := c.renderLabelPixmap(wid, width, height, glyphs)
	if err != nil {
		ind.Destroy()
		return nil, err
	}
	ind.pixmap = pixmap
	xproto.ChangeWindowAttributes(conn, wid, xproto.CwBackPixmap, []uint32{uint32(pixmap)})

	c.setIndicatorOpacity(wid)
	c.clearInputShape(wid)

	xproto.ConfigureWindow(conn, wid, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove})
	xproto.MapWindow(conn, wid)
	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)

	return ind, nil
}

// Destroy tears down the indicator window. Best-effort: the window may
// already be gone if the X connection dropped.
func (i *Indicator) Destroy() {
	if i == nil || i.win == 0 {
		return
	}
	conn := i.conn.XUtil.Conn()
	if i.pixmap != 0 {
		xproto.FreePixmap(conn, i.pixmap)
		i.pixmap = 0
	}
	xproto.DestroyWindow(conn, i.win)
	i.win = 0
}

// renderLabelPixmap draws the glyph rectangles centered on a background
// pixmap sized to the window.
func (c *Connection) renderLabelPixmap(drawable xproto.Window, width, height int, glyphs []glyphRect) (xproto.Pixmap, error) {
	conn := c.XUtil.Conn()
	screen := c.XUtil.Screen()

	pixmap, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate indicator pixmap id: %w", err)
	}
	if err := xproto.CreatePixmapChecked(conn, screen.RootDepth, pixmap,
		xproto.Drawable(drawable), uint16(width), uint16(height)).Check(); err != nil {
		return 0, fmt.Errorf("failed to create indicator pixmap: %w", err)
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.FreePixmap(conn, pixmap)
		return 0, fmt.Errorf("failed to allocate indicator gc id: %w", err)
	}
	defer xproto.FreeGC(conn, gc)

	xproto.CreateGC(conn, gc, xproto.Drawable(pixmap), xproto.GcForeground,
		[]uint32{indicatorBackground})
	xproto.PolyFillRectangle(conn, xproto.Drawable(pixmap), gc, []xproto.Rectangle{
		{X: 0, Y: 0, Width: uint16(width), Height: uint16(height)},
	})

	xproto.ChangeGC(conn, gc, xproto.GcForeground, []uint32{indicatorForeground})
	rects := make([]xproto.Rectangle, 0, len(glyphs))
	for _, g := range glyphs {
		rects = append(rects, xproto.Rectangle{
			X:      int16(g.X + indicatorMargin),
			Y:      int16(g.Y + indicatorMargin),
			Width:  uint16(g.Width),
			Height: uint16(g.Height),
		})
	}
	xproto.PolyFillRectangle(conn, xproto.Drawable(pixmap), gc, rects)

	return pixmap, nil
}

// setIndicatorOpacity applies _NET_WM_WINDOW_OPACITY. Ignored by
// non-compositing window managers, which is fine.
func (c *Connection) setIndicatorOpacity(win xproto.Window) {
	atom, err := c.internAtom("_NET_WM_WINDOW_OPACITY")
	if err != nil {
		return
	}
	data := make([]byte, 4)
	xgb.Put32(data, indicatorOpacity)
	xproto.ChangeProperty(c.XUtil.Conn(), xproto.PropModeReplace, win, atom,
		xproto.AtomCardinal, 32, 1, data)
}

// clearInputShape makes the window click-through by setting an empty
// input region via the shape extension. Best-effort: without the
// extension the indicator still shows, it just eats clicks.
func (c *Connection) clearInputShape(win xproto.Window) {
	conn := c.XUtil.Conn()

	shapeInitOnce.Do(func() {
		shapeInitErr = shape.Init(conn)
	})
	if shapeInitErr != nil {
		return
	}

	shape.Rectangles(conn, shape.SoSet, shape.SkInput,
		xproto.ClipOrderingUnsorted, win, 0, 0, nil)
}
