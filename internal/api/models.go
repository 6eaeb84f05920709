package api

import "github.com/homeinfogmbh/backlight/internal/version"

// BrightnessResponse reports the full brightness state of the bound card.
type BrightnessResponse struct {
	Body struct {
		GraphicsCard string `json:"graphics_card" example:"acpi_video0" doc:"Graphics card name"`
		Raw          string `json:"raw" example:"191" doc:"Raw brightness as the device reports it"`
		Value        int    `json:"value" example:"191" doc:"Raw brightness as integer"`
		Percent      int    `json:"percent" example:"75" doc:"Brightness in percent of the maximum"`
		Max          int    `json:"max" example:"255" doc:"Maximum raw brightness"`
	}
}

// SetBrightnessRequest sets brightness either in percent or raw form.
// Exactly one of the two fields must be present.
type SetBrightnessRequest struct {
	Body struct {
		Percent *int    `json:"percent,omitempty" minimum:"0" maximum:"100" example:"75" doc:"Brightness in percent"`
		Raw     *string `json:"raw,omitempty" example:"191" doc:"Raw brightness value"`
	}
}

// DeviceInfo describes one candidate device directory.
type DeviceInfo struct {
	Name      string `json:"name" example:"acpi_video0" doc:"Device directory name"`
	Supported bool   `json:"supported" example:"true" doc:"Whether the device implements the backlight API"`
}

// DevicesResponse lists all candidate devices under the backlight root.
type DevicesResponse struct {
	Body struct {
		Devices []DeviceInfo `json:"devices" doc:"Candidate devices"`
		Count   int          `json:"count" example:"1" doc:"Number of candidates"`
	}
}

// HealthResponse reports API liveness.
type HealthResponse struct {
	Body struct {
		Status string `json:"status" example:"ok" doc:"Health status"`
	}
}

// VersionResponse reports build metadata.
type VersionResponse struct {
	Body version.Info
}
