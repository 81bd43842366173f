// Package browser replays pointer operations inside a Chromium page. The page
// stands in for a desktop, which makes it possible to rehearse a script and
// record it without touching the real cursor.
package browser

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/v0xg/mousereplay/internal/overlay"
	"github.com/v0xg/mousereplay/internal/pointer"
)

// WheelStep is the pixel distance of one scroll unit
const WheelStep = 100

// Options configures the browser session
type Options struct {
	URL        string
	Width      int
	Height     int
	Headless   bool
	ProfileDir string // Chrome/Chromium profile directory for authenticated sessions
	Record     bool   // Capture a frame after every pointer operation
	Timeout    time.Duration
}

// mouse is the subset of *rod.Mouse the driver needs
type mouse interface {
	MoveTo(p proto.Point) error
	Down(button proto.InputMouseButton, clickCount int) error
	Up(button proto.InputMouseButton, clickCount int) error
	Click(button proto.InputMouseButton, clickCount int) error
	Scroll(offsetX, offsetY float64, steps int) error
}

// Frame is a captured screenshot with the cursor state at capture time
type Frame struct {
	Image  image.Image
	Cursor overlay.Cursor
}

// Driver implements pointer.Driver against a rod page
type Driver struct {
	browser *rod.Browser
	page    *rod.Page
	mouse   mouse
	capture func() (image.Image, error)

	cursor overlay.Cursor
	frames []Frame
}

// Launch starts a browser, opens opts.URL and returns a driver for it
func Launch(opts Options) (*Driver, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.URL == "" {
		opts.URL = "about:blank"
	}

	l := launcher.New().Headless(opts.Headless)
	if path, ok := launcher.LookPath(); ok {
		l = l.Bin(path)
	}
	if opts.ProfileDir != "" {
		l = l.UserDataDir(opts.ProfileDir)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b, err := connect(u, l.Kill)
	if err != nil {
		return nil, err
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: opts.URL})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("open %s: %w", opts.URL, err)
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	if err := page.Timeout(opts.Timeout).WaitLoad(); err != nil {
		b.Close()
		return nil, fmt.Errorf("wait for %s: %w", opts.URL, err)
	}

	var capture func() (image.Image, error)
	if opts.Record {
		capture = func() (image.Image, error) { return captureFrame(page) }
	}
	d := newDriver(page.Mouse, capture)
	d.browser = b
	d.page = page
	return d, nil
}

// connect attaches to the browser at controlURL. On failure kill stops the
// launched process so it does not outlive the run.
func connect(controlURL string, kill func()) (*rod.Browser, error) {
	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	return b, nil
}

// newDriver wraps a mouse. When capture is set the page is captured once up
// front so a recording is never empty, even for a script of waits.
func newDriver(m mouse, capture func() (image.Image, error)) *Driver {
	d := &Driver{mouse: m, capture: capture}
	d.snap(false)
	return d
}

// Close cleans up browser resources
func (d *Driver) Close() {
	if d.page != nil {
		d.page.Close()
	}
	if d.browser != nil {
		d.browser.Close()
	}
}

// Frames returns everything captured so far
func (d *Driver) Frames() []Frame {
	return d.frames
}

// Cursor returns the tracked cursor position
func (d *Driver) Cursor() overlay.Cursor {
	return d.cursor
}

func (d *Driver) MoveTo(x, y int) error {
	if err := d.mouse.MoveTo(proto.Point{X: float64(x), Y: float64(y)}); err != nil {
		return fmt.Errorf("move to (%d, %d): %w", x, y, err)
	}
	d.cursor.X, d.cursor.Y = x, y
	d.snap(false)
	return nil
}

func (d *Driver) MoveBy(dx, dy int) error {
	return d.MoveTo(d.cursor.X+dx, d.cursor.Y+dy)
}

func (d *Driver) Press(b pointer.Button) error {
	if err := d.mouse.Down(buttonFor(b), 1); err != nil {
		return fmt.Errorf("press %s: %w", b, err)
	}
	d.cursor.Pressed = true
	d.snap(false)
	return nil
}

func (d *Driver) Release(b pointer.Button) error {
	if err := d.mouse.Up(buttonFor(b), 1); err != nil {
		return fmt.Errorf("release %s: %w", b, err)
	}
	d.cursor.Pressed = false
	d.snap(false)
	return nil
}

func (d *Driver) Click(b pointer.Button) error {
	if err := d.mouse.Click(buttonFor(b), 1); err != nil {
		return fmt.Errorf("click %s: %w", b, err)
	}
	d.snap(true)
	return nil
}

// ScrollY follows the desktop convention: positive units scroll up, which is
// a negative wheel delta in the page.
func (d *Driver) ScrollY(units int) error {
	steps := units
	if steps < 0 {
		steps = -steps
	}
	if steps == 0 {
		return nil
	}
	if err := d.mouse.Scroll(0, float64(-units*WheelStep), steps); err != nil {
		return fmt.Errorf("scroll %d: %w", units, err)
	}
	d.snap(false)
	return nil
}

// snap captures a frame when recording. Capture failures drop the frame.
func (d *Driver) snap(click bool) {
	if d.capture == nil {
		return
	}
	img, err := d.capture()
	if err != nil {
		return
	}
	c := d.cursor
	c.Click = click
	d.frames = append(d.frames, Frame{Image: img, Cursor: c})
}

func buttonFor(b pointer.Button) proto.InputMouseButton {
	switch b {
	case pointer.Right:
		return proto.InputMouseButtonRight
	case pointer.Middle:
		return proto.InputMouseButtonMiddle
	default:
		return proto.InputMouseButtonLeft
	}
}

func captureFrame(page *rod.Page) (image.Image, error) {
	quality := 90
	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatPng,
		Quality: &quality,
	})
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return img, nil
}
