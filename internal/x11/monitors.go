package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
)

// Monitor represents a physical display. Index follows enumeration order
// and is assigned fresh on every call to GetMonitors.
type Monitor struct {
	Index  int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the monitor's right edge in screen coordinates.
func (m Monitor) Right() int { return m.X + m.Width }

// Bottom returns the monitor's bottom edge in screen coordinates.
func (m Monitor) Bottom() int { return m.Y + m.Height }

// GetMonitors retrieves all active monitors using XRandR. The snapshot is
// not cached; callers re-enumerate whenever fresh geometry is needed.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	// Initialize RandR if not already done
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			Index:  len(monitors),
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}
