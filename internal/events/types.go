package events

// Event type constants for kelindar/event.
const (
	TypeBrightnessChanged uint32 = iota + 1
	TypeCardSelected
	TypeScheduleReloaded
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// BrightnessChangedEvent is published after a successful brightness write.
type BrightnessChangedEvent struct {
	GraphicsCard string `json:"graphics_card" example:"acpi_video0" doc:"Graphics card name"`
	Value        int    `json:"value" example:"191" doc:"Raw brightness value"`
	Percent      int    `json:"percent" example:"75" doc:"Brightness in percent"`
	Source       string `json:"source" example:"schedule" doc:"What triggered the change: schedule, api, cli"`
	Timestamp    string `json:"timestamp" example:"2026-08-23T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for BrightnessChangedEvent.
func (e BrightnessChangedEvent) Type() uint32 { return TypeBrightnessChanged }

// CardSelectedEvent is published when the daemon binds to a graphics card.
type CardSelectedEvent struct {
	GraphicsCard string `json:"graphics_card" example:"acpi_video0" doc:"Graphics card name"`
	Max          int    `json:"max" example:"255" doc:"Maximum raw brightness"`
	Timestamp    string `json:"timestamp" example:"2026-08-23T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for CardSelectedEvent.
func (e CardSelectedEvent) Type() uint32 { return TypeCardSelected }

// ScheduleReloadedEvent is published when the schedule file changes on disk.
type ScheduleReloadedEvent struct {
	Path      string `json:"path" example:"/etc/backlight.toml" doc:"Schedule file path"`
	Entries   int    `json:"entries" example:"4" doc:"Number of schedule entries"`
	Timestamp string `json:"timestamp" example:"2026-08-23T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ScheduleReloadedEvent.
func (e ScheduleReloadedEvent) Type() uint32 { return TypeScheduleReloaded }
