// Package daemon runs the timed-brightness loop: it binds to one
// graphics card and applies the scheduled percentage whenever the
// wall clock reaches a schedule entry.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	sd "github.com/coreos/go-systemd/v22/daemon"

	"github.com/homeinfogmbh/backlight/internal/backlight"
	"github.com/homeinfogmbh/backlight/internal/events"
	"github.com/homeinfogmbh/backlight/internal/metrics"
	"github.com/homeinfogmbh/backlight/internal/schedule"
)

// DefaultTick is the loop interval.
const DefaultTick = time.Second

// Options configures a Daemon. Backlight, Bus and Logger are required;
// a nil Schedule behaves like an empty one.
type Options struct {
	Backlight    *backlight.Backlight
	Schedule     *schedule.Schedule
	SchedulePath string
	Tick         time.Duration
	Reset        bool // restore the initial brightness on shutdown
	Bus          *events.Bus
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// Daemon applies a brightness schedule to one graphics card.
type Daemon struct {
	backlight    *backlight.Backlight
	schedulePath string
	tick         time.Duration
	reset        bool
	bus          *events.Bus
	metrics      *metrics.Metrics
	logger       *slog.Logger

	mu    sync.RWMutex
	sched *schedule.Schedule

	initial    int // percent at startup, for reset-on-exit
	lastMinute int
}

// New creates a daemon over an already selected backlight handle.
func New(opts *Options) *Daemon {
	sched := opts.Schedule
	if sched == nil {
		sched = schedule.Parse(nil, opts.Logger)
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}

	return &Daemon{
		backlight:    opts.Backlight,
		schedulePath: opts.SchedulePath,
		tick:         tick,
		reset:        opts.Reset,
		bus:          opts.Bus,
		metrics:      opts.Metrics,
		logger:       opts.Logger,
		sched:        sched,
		lastMinute:   -1,
	}
}

// SetSchedule swaps the active schedule, typically from the file watcher.
func (d *Daemon) SetSchedule(sched *schedule.Schedule) {
	d.mu.Lock()
	d.sched = sched
	d.mu.Unlock()

	d.logger.Info("Schedule replaced", "entries", sched.Len())
	if d.bus != nil {
		d.bus.Publish(events.ScheduleReloadedEvent{
			Path:      d.schedulePath,
			Entries:   sched.Len(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Apply sets the brightness, logs the outcome and feeds the event bus
// and metrics. Failures are logged, never fatal: the daemon keeps
// running across permission or range problems, matching a service that
// must survive transient misconfiguration.
func (d *Daemon) Apply(percent int, source string) {
	err := d.backlight.SetPercent(percent)
	if d.metrics != nil {
		d.metrics.CountWrite(d.backlight.Name(), err)
	}

	switch {
	case err == nil:
	case errors.Is(err, os.ErrPermission):
		d.logger.Error("Cannot set brightness. Is this service running as root?", "error", err)
		return
	default:
		var rangeErr *backlight.RangeError
		if errors.As(err, &rangeErr) {
			d.logger.Error("Invalid brightness", "percent", percent)
		} else {
			d.logger.Error("Failed to set brightness", "error", err)
		}
		return
	}

	d.logger.Info("Set brightness", "percent", percent, "source", source)

	value, _ := d.backlight.Value()
	if d.metrics != nil {
		d.metrics.ObserveBrightness(d.backlight.Name(), value, percent, d.backlight.Max())
	}
	if d.bus != nil {
		d.bus.Publish(events.BrightnessChangedEvent{
			GraphicsCard: d.backlight.Name(),
			Value:        value,
			Percent:      percent,
			Source:       source,
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Run drives the tick loop until the context is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	initial, err := d.backlight.Percent()
	if err != nil {
		return err
	}
	d.initial = initial

	d.logger.Info("Starting up",
		"graphics_card", d.backlight.Name(),
		"tick", d.tick,
		"initial_percent", d.initial)

	if d.bus != nil {
		d.bus.Publish(events.CardSelectedEvent{
			GraphicsCard: d.backlight.Name(),
			Max:          d.backlight.Max(),
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
		})
	}

	d.applyLatest(time.Now())

	// Tell systemd we are up; a no-op outside a unit.
	_, _ = sd.SdNotify(false, sd.SdNotifyReady)

	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_, _ = sd.SdNotify(false, sd.SdNotifyStopping)
			d.shutdown()
			return nil
		case now := <-ticker.C:
			d.tickOnce(now)
		}
	}
}

// applyLatest applies the schedule entry in effect at the given time,
// falling back to full brightness when the schedule is empty.
func (d *Daemon) applyLatest(now time.Time) {
	d.mu.RLock()
	sched := d.sched
	d.mu.RUnlock()

	entry, err := sched.Latest(now)
	if err != nil {
		d.logger.Warn("No schedule entry, falling back to 100%")
		d.Apply(100, "fallback")
		return
	}

	d.logger.Info("Loaded latest setting", "timestamp", entry.Timestamp())
	d.Apply(entry.Percent, "schedule")
}

// tickOnce applies the schedule entry for the current minute, once per
// minute edge.
func (d *Daemon) tickOnce(now time.Time) {
	minute := now.Hour()*60 + now.Minute()
	if minute == d.lastMinute {
		return
	}
	d.lastMinute = minute

	d.mu.RLock()
	sched := d.sched
	d.mu.RUnlock()

	if percent, ok := sched.At(now); ok {
		d.Apply(percent, "schedule")
	}
}

func (d *Daemon) shutdown() {
	if d.reset {
		d.logger.Info("Resetting brightness", "percent", d.initial)
		d.Apply(d.initial, "reset")
	}
	d.logger.Info("Terminating")
}
