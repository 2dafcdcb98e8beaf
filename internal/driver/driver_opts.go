package driver

import "time"

type DriverOpt func(*Driver)

// WithTickLength sets the tick interval. Non-positive values keep the default.
func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(d *Driver) {
		if tickLength > 0 {
			d.tickLength = tickLength
		}
	}
}
