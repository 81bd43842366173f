package pointer

import "log/slog"

// LogDriver records every operation to a logger without touching any device.
// Used for dry runs.
type LogDriver struct {
	Logger *slog.Logger
}

// NewLogDriver returns a dry-run driver writing to logger
func NewLogDriver(logger *slog.Logger) *LogDriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDriver{Logger: logger}
}

func (d *LogDriver) MoveTo(x, y int) error {
	d.Logger.Info("pointer move", "x", x, "y", y)
	return nil
}

func (d *LogDriver) MoveBy(dx, dy int) error {
	d.Logger.Info("pointer move relative", "dx", dx, "dy", dy)
	return nil
}

func (d *LogDriver) Press(b Button) error {
	d.Logger.Info("pointer press", "button", b.String())
	return nil
}

func (d *LogDriver) Release(b Button) error {
	d.Logger.Info("pointer release", "button", b.String())
	return nil
}

func (d *LogDriver) Click(b Button) error {
	d.Logger.Info("pointer click", "button", b.String())
	return nil
}

func (d *LogDriver) ScrollY(units int) error {
	d.Logger.Info("pointer scroll", "units", units)
	return nil
}
