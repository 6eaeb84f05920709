package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/homeinfogmbh/backlight/cmd"
	"github.com/homeinfogmbh/backlight/internal/api"
	"github.com/homeinfogmbh/backlight/internal/backlight"
	"github.com/homeinfogmbh/backlight/internal/config"
	"github.com/homeinfogmbh/backlight/internal/daemon"
	"github.com/homeinfogmbh/backlight/internal/events"
	"github.com/homeinfogmbh/backlight/internal/logging"
	"github.com/homeinfogmbh/backlight/internal/metrics"
	"github.com/homeinfogmbh/backlight/internal/schedule"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"/etc/backlight.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8092" toml:"server.port" env:"SERVER_PORT"`

	// Backlight settings
	GraphicsCards []string `help:"Preferred graphics cards, tried in order" toml:"backlight.graphics_cards" env:"BACKLIGHT_GRAPHICS_CARDS"`

	// Schedule settings
	ScheduleFile string `help:"Brightness schedule file" default:"/etc/backlight.d/schedule.toml" toml:"schedule.file" env:"SCHEDULE_FILE"`
	Tick         int    `help:"Schedule poll interval in seconds" default:"1" toml:"schedule.tick_seconds" env:"SCHEDULE_TICK_SECONDS"`
	Reset        bool   `help:"Restore the initial brightness on shutdown" default:"true" toml:"schedule.reset" env:"SCHEDULE_RESET"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings
	LoggingLevel    string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat   string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingDaemon   string `help:"Daemon logging level" default:"info" toml:"logging.daemon" env:"LOGGING_DAEMON"`
	LoggingAPI      string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingSchedule string `help:"Schedule logging level" default:"info" toml:"logging.schedule" env:"LOGGING_SCHEDULE"`
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// cli is assigned by the time Run invokes this callback.
		if loadErr := config.Load(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"daemon":   opts.LoggingDaemon,
				"api":      opts.LoggingAPI,
				"schedule": opts.LoggingSchedule,
			},
		})

		logger := logging.GetLogger("main")

		card, err := backlight.Select(opts.GraphicsCards)
		if err != nil {
			logger.Error("No supported graphics cards found", "error", err)
			os.Exit(1)
		}
		logger.Info("Selected graphics card", "graphics_card", card.Name(), "max", card.Max())

		scheduleLogger := logging.GetLogger("schedule")
		sched, err := schedule.Load(opts.ScheduleFile, scheduleLogger)
		if err != nil {
			logger.Error("Failed to load schedule", "path", opts.ScheduleFile, "error", err)
			os.Exit(1)
		}

		bus := events.New()
		meters := metrics.New()

		d := daemon.New(&daemon.Options{
			Backlight:    card,
			Schedule:     sched,
			SchedulePath: opts.ScheduleFile,
			Tick:         time.Duration(opts.Tick) * time.Second,
			Reset:        opts.Reset,
			Bus:          bus,
			Metrics:      meters,
			Logger:       logging.GetLogger("daemon"),
		})

		// Reload the schedule when its file changes on disk.
		watcher := config.NewWatcher(
			opts.ScheduleFile,
			func(path string) (*schedule.Schedule, error) {
				return schedule.Load(path, scheduleLogger)
			},
			func(next *schedule.Schedule) {
				d.SetSchedule(next)
				meters.CountScheduleReload(opts.ScheduleFile)
			},
			scheduleLogger,
		)

		server := api.NewServer(&api.Options{
			Backlight:    card,
			Root:         backlight.NewRoot(backlight.DefaultDir),
			Bus:          bus,
			Metrics:      meters,
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		hooks.OnStart(func() {
			if watchErr := watcher.Start(); watchErr != nil {
				logger.Warn("Schedule file not watched", "path", opts.ScheduleFile, "error", watchErr)
			}

			go func() {
				defer close(done)
				if runErr := d.Run(ctx); runErr != nil {
					logger.Error("Daemon stopped", "error", runErr)
				}
			}()

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if stopErr := watcher.Stop(); stopErr != nil {
				logger.Error("Error stopping schedule watcher", "error", stopErr)
			}

			cancel()
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				logger.Warn("Daemon did not stop in time")
			}
		})
	})

	cli.Root().Use = "backlightd"
	cli.Root().AddCommand(
		cmd.CreateGetCmd(),
		cmd.CreateSetCmd(),
		cmd.CreateListCmd(),
		cmd.CreateUpdateCmd(),
	)

	cli.Run()
}
