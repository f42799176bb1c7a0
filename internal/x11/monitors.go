package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

const fullscreenAtom = "_NET_WM_STATE_FULLSCREEN"

// GetMonitors retrieves all active monitors using XRandR. Servers without
// active CRTCs report the root window as a single monitor.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
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
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     len(monitors),
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	if len(monitors) == 0 {
		root := xwindow.RootGeometry(c.XUtil)
		monitors = append(monitors, Monitor{
			Name:   "root",
			X:      root.X(),
			Y:      root.Y(),
			Width:  root.Width(),
			Height: root.Height(),
		})
	}

	return monitors, nil
}

// FullscreenSupported reports whether the running window manager advertises
// _NET_WM_STATE_FULLSCREEN.
func (c *Connection) FullscreenSupported() bool {
	atoms, err := ewmh.SupportedGet(c.XUtil)
	if err != nil {
		return false
	}
	for _, atom := range atoms {
		if atom == fullscreenAtom {
			return true
		}
	}
	return false
}
