package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/pixelwin/internal/ipc"
	"github.com/1broseidon/pixelwin/internal/platform"
	"github.com/1broseidon/pixelwin/internal/platform/platformtest"
	"github.com/1broseidon/pixelwin/internal/window"
)

func newTestController(t *testing.T) *controller {
	t.Helper()
	return newTestControllerOn(t, platformtest.NewHost(platform.Display{
		Name:                "primary",
		Bounds:              platform.Rect{Width: 1920, Height: 1080},
		FullscreenSupported: true,
	}))
}

func newTestControllerOn(t *testing.T, host *platformtest.Host) *controller {
	t.Helper()
	reg, err := platform.NewRegistry(host)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	win, err := window.New(host, reg, window.Options{Width: 320, Height: 240, Title: "demo", Visible: true})
	if err != nil {
		t.Fatalf("window.New: %v", err)
	}
	t.Cleanup(win.Close)
	d := newDemo(win.Width(), win.Height())
	t.Cleanup(d.frame.Free)
	return &controller{
		win:         win,
		demo:        d,
		displays:    reg,
		backend:     "test",
		snapshotDir: t.TempDir(),
		started:     time.Now(),
		logger:      slog.New(slog.DiscardHandler),
	}
}

// ask runs one request through c.handle and waits for the reply.
func ask(t *testing.T, c *controller, cmd ipc.CommandType, payload interface{}) (*ipc.Response, bool) {
	t.Helper()
	req, err := ipc.NewRequest(cmd, payload)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	call, reply := ipc.NewCall(req)
	quit, err := c.handle(call, time.Now())
	if err != nil {
		t.Fatalf("handle(%s): %v", cmd, err)
	}
	select {
	case resp := <-reply:
		return resp, quit
	case <-time.After(5 * time.Second):
		t.Fatalf("no reply to %s", cmd)
	}
	return nil, false
}

func decodeStatus(t *testing.T, resp *ipc.Response) ipc.StatusData {
	t.Helper()
	if resp.Status != "OK" {
		t.Fatalf("response error: %s", resp.Error)
	}
	var status ipc.StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return status
}

func TestController_StatusAndMode(t *testing.T) {
	c := newTestController(t)

	status := decodeStatus(t, mustAsk(t, c, ipc.CommandGetStatus, nil))
	if status.Title != "demo" || status.Mode != "windowed" || status.Width != 320 || status.Backend != "test" {
		t.Fatalf("status = %+v", status)
	}

	status = decodeStatus(t, mustAsk(t, c, ipc.CommandSetMode, ipc.SetModePayload{Mode: "borderless-full"}))
	if status.Mode != "borderless-full" || status.Width != 1920 || status.Height != 1080 {
		t.Fatalf("status after borderless-full = %+v", status)
	}
	if n := len(c.demo.frame.Content()); n != 1920*1080 {
		t.Fatalf("frame not resized: %d pixels", n)
	}

	resp := mustAsk(t, c, ipc.CommandSetMode, ipc.SetModePayload{Mode: "maximized"})
	if resp.Status != "ERROR" || c.win.Mode() != window.BorderlessFull {
		t.Fatalf("bad mode: resp=%+v mode=%v", resp, c.win.Mode())
	}
}

func TestController_FailedModeChangeIsRecoverable(t *testing.T) {
	host := platformtest.NewHost(platform.Display{
		Name:   "primary",
		Bounds: platform.Rect{Width: 1920, Height: 1080},
	})
	c := newTestControllerOn(t, host)

	host.SurfaceErr = errors.New("out of surfaces")
	resp := mustAsk(t, c, ipc.CommandSetMode, ipc.SetModePayload{Mode: "borderless"})
	if resp.Status != "ERROR" || !strings.Contains(resp.Error, "out of surfaces") {
		t.Fatalf("expected an error response, got %+v", resp)
	}
	if c.win.Mode() != window.Windowed || c.win.Width() != 320 {
		t.Fatalf("window changed after failed rebuild: %v %dx%d", c.win.Mode(), c.win.Width(), c.win.Height())
	}
	if err := c.win.Swap(c.demo.frame.Content()); err != nil {
		t.Fatalf("Swap after failed rebuild: %v", err)
	}

	host.SurfaceErr = nil
	status := decodeStatus(t, mustAsk(t, c, ipc.CommandSetMode, ipc.SetModePayload{Mode: "borderless"}))
	if status.Mode != "borderless" {
		t.Fatalf("status after recovery = %+v", status)
	}
}

func mustAsk(t *testing.T, c *controller, cmd ipc.CommandType, payload interface{}) *ipc.Response {
	t.Helper()
	resp, quit := ask(t, c, cmd, payload)
	if quit {
		t.Fatalf("%s requested quit", cmd)
	}
	return resp
}

func TestController_TitleMonitorsSnapshotQuit(t *testing.T) {
	c := newTestController(t)

	if resp := mustAsk(t, c, ipc.CommandSetTitle, ipc.SetTitlePayload{Title: "renamed"}); resp.Status != "OK" || c.win.Title() != "renamed" {
		t.Fatalf("SET_TITLE: resp=%+v title=%q", resp, c.win.Title())
	}

	var monitors ipc.MonitorsData
	if err := json.Unmarshal(mustAsk(t, c, ipc.CommandGetMonitors, nil).Data, &monitors); err != nil {
		t.Fatalf("decode monitors: %v", err)
	}
	if len(monitors.Monitors) != 1 || monitors.Monitors[0].Width != 1920 || !monitors.Monitors[0].FullscreenSupported {
		t.Fatalf("monitors = %+v", monitors)
	}

	var snap ipc.SnapshotData
	if err := json.Unmarshal(mustAsk(t, c, ipc.CommandSnapshot, nil).Data, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if filepath.Dir(snap.Path) != c.snapshotDir {
		t.Fatalf("snapshot path %q not under %q", snap.Path, c.snapshotDir)
	}
	if _, err := os.Stat(snap.Path); err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}

	if resp, quit := ask(t, c, ipc.CommandQuit, nil); !quit || resp.Status != "OK" {
		t.Fatalf("QUIT: resp=%+v quit=%v", resp, quit)
	}
}

func TestCtl_OverSocket(t *testing.T) {
	c := newTestController(t)
	path := filepath.Join(t.TempDir(), "ctl.sock")
	srv, err := ipc.NewServer(path, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)

	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	go func() {
		for {
			select {
			case call := <-srv.Calls():
				c.handle(call, time.Now())
			case <-stop:
				return
			}
		}
	}()

	client := ipc.NewClient(path)
	var out, errOut bytes.Buffer
	if code := ctl(client, []string{"mode", "borderless"}, &out, &errOut); code != 0 {
		t.Fatalf("ctl mode exit %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "mode:           borderless") {
		t.Fatalf("unexpected status output:\n%s", out.String())
	}

	out.Reset()
	if code := ctl(client, []string{"monitors"}, &out, &errOut); code != 0 || !strings.Contains(out.String(), "primary") {
		t.Fatalf("ctl monitors exit %d:\n%s", code, out.String())
	}

	errOut.Reset()
	if code := ctl(client, []string{"mode", "tiled"}, &out, &errOut); code != 1 || !strings.Contains(errOut.String(), "pixelwin error") {
		t.Fatalf("ctl bad mode exit %d: %s", code, errOut.String())
	}
	if code := ctl(client, []string{"bogus"}, &out, &errOut); code != 2 {
		t.Fatalf("ctl bogus exit %d", code)
	}
}
