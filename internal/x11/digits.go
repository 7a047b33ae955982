package x11

// Seven-segment glyph geometry for the desktop-number indicator. X core
// fonts top out far below the size the indicator needs, so the digits are
// drawn as filled rectangles instead.

const (
	digitWidth      = 64
	digitHeight     = 110
	segmentThick    = 14
	digitGap        = 18
	indicatorMargin = 20
)

// segment identifiers, classic seven-segment naming:
//
//	 aaa
//	f   b
//	 ggg
//	e   c
//	 ddd
const (
	segA = 1 << iota
	segB
	segC
	segD
	segE
	segF
	segG
)

var digitSegments = [10]int{
	segA | segB | segC | segD | segE | segF,        // 0
	segB | segC,                                    // 1
	segA | segB | segG | segE | segD,               // 2
	segA | segB | segG | segC | segD,               // 3
	segF | segG | segB | segC,                      // 4
	segA | segF | segG | segC | segD,               // 5
	segA | segF | segG | segE | segC | segD,        // 6
	segA | segB | segC,                             // 7
	segA | segB | segC | segD | segE | segF | segG, // 8
	segA | segB | segC | segD | segF | segG,        // 9
}

type glyphRect struct {
	X, Y, Width, Height int
}

// digitRects returns the filled rectangles for one decimal digit with its
// top-left corner at (originX, originY).
func digitRects(digit int, originX, originY int) []glyphRect {
	if digit < 0 || digit > 9 {
		return nil
	}

	w, h, t := digitWidth, digitHeight, segmentThick
	half := h / 2
	segs := digitSegments[digit]

	var rects []glyphRect
	add := func(mask int, r glyphRect) {
		if segs&mask != 0 {
			r.X += originX
			r.Y += originY
			rects = append(rects, r)
		}
	}

	add(segA, glyphRect{0, 0, w, t})
	add(segB, glyphRect{w - t, 0, t, half})
	add(segC, glyphRect{w - t, half, t, h - half})
	add(segD, glyphRect{0, h - t, w, t})
	add(segE, glyphRect{0, half, t, h - half})
	add(segF, glyphRect{0, 0, t, half})
	add(segG, glyphRect{0, half - t/2, w, t})

	return rects
}

// labelRects lays out the digits of label left to right and returns their
// rectangles relative to the label origin, plus the label's total size.
// Non-digit characters are skipped.
func labelRects(label string) (rects []glyphRect, width, height int) {
	x := 0
	for _, ch := range label {
		if ch < '0' || ch > '9' {
			continue
		}
		rects = append(rects, digitRects(int(ch-'0'), x, 0)...)
		x += digitWidth + digitGap
	}
	if x == 0 {
		return nil, 0, 0
	}
	return rects, x - digitGap, digitHeight
}
