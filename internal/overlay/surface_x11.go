//go:build linux

package overlay

import (
	"github.com/deskhop/deskhop/internal/platform"
)

// X11Surface adapts the Linux platform backend to the Surface interface.
type X11Surface struct {
	Backend *platform.LinuxBackend
}

var _ Surface = X11Surface{}

// Monitors returns a fresh monitor snapshot from RandR.
func (s X11Surface) Monitors() ([]platform.Monitor, error) {
	return s.Backend.Monitors()
}

// CreateIndicator creates an X11 indicator window at (x, y).
func (s X11Surface) CreateIndicator(label string, x, y int) (Indicator, error) {
	ind, err := s.Backend.Connection().CreateIndicator(label, x, y)
	if err != nil {
		return nil, err
	}
	return ind, nil
}
