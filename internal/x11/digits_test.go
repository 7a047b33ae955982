package x11

import "testing"

func segmentCount(digit int) int {
	count := 0
	for mask := segA; mask <= segG; mask <<= 1 {
		if digitSegments[digit]&mask != 0 {
			count++
		}
	}
	return count
}

func TestDigitRects_SegmentCounts(t *testing.T) {
	tests := []struct {
		digit    int
		segments int
	}{
		{0, 6},
		{1, 2},
		{2, 5},
		{3, 5},
		{4, 4},
		{5, 5},
		{6, 6},
		{7, 3},
		{8, 7},
		{9, 6},
	}

	for _, tt := range tests {
		if got := segmentCount(tt.digit); got != tt.segments {
			t.Errorf("digit %d: %d segments, want %d", tt.digit, got, tt.segments)
		}
		if got := len(digitRects(tt.digit, 0, 0)); got != tt.segments {
			t.Errorf("digitRects(%d): %d rects, want %d", tt.digit, got, tt.segments)
		}
	}
}

func TestDigitRects_OutOfRange(t *testing.T) {
	if rects := digitRects(-1, 0, 0); rects != nil {
		t.Errorf("digitRects(-1) = %v, want nil", rects)
	}
	if rects := digitRects(10, 0, 0); rects != nil {
		t.Errorf("digitRects(10) = %v, want nil", rects)
	}
}

func TestDigitRects_OriginOffset(t *testing.T) {
	base := digitRects(8, 0, 0)
	shifted := digitRects(8, 30, 40)

	if len(base) != len(shifted) {
		t.Fatalf("rect count changed with origin: %d vs %d", len(base), len(shifted))
	}
	for i := range base {
		if shifted[i].X != base[i].X+30 || shifted[i].Y != base[i].Y+40 {
			t.Errorf("rect %d: got (%d,%d), want (%d,%d)",
				i, shifted[i].X, shifted[i].Y, base[i].X+30, base[i].Y+40)
		}
	}
}

func TestLabelRects_SingleDigit(t *testing.T) {
	rects, width, height := labelRects("7")
	if len(rects) != 3 {
		t.Errorf("labelRects(%q): %d rects, want 3", "7", len(rects))
	}
	if width != digitWidth {
		t.Errorf("width = %d, want %d", width, digitWidth)
	}
	if height != digitHeight {
		t.Errorf("height = %d, want %d", height, digitHeight)
	}
}

func TestLabelRects_MultiDigitWidth(t *testing.T) {
	_, width, _ := labelRects("10")
	want := 2*digitWidth + digitGap
	if width != want {
		t.Errorf("labelRects(%q) width = %d, want %d", "10", width, want)
	}
}

func TestLabelRects_SkipsNonDigits(t *testing.T) {
	rects, _, _ := labelRects("a7b")
	want, _, _ := labelRects("7")
	if len(rects) != len(want) {
		t.Errorf("non-digit characters not skipped: %d rects, want %d", len(rects), len(want))
	}

	if rects, _, _ := labelRects("xyz"); rects != nil {
		t.Errorf("labelRects with no digits = %v, want nil", rects)
	}
}
