package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/homeinfogmbh/backlight/internal/backlight"
	"github.com/homeinfogmbh/backlight/internal/events"
)

// registerBrightnessRoutes registers the read/write brightness endpoints
// on the card the server is bound to.
func (s *Server) registerBrightnessRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-brightness",
		Method:      http.MethodGet,
		Path:        "/api/brightness",
		Summary:     "Get Brightness",
		Description: "Read the current brightness of the bound graphics card in all units.",
		Tags:        []string{"brightness"},
		Security:    withAuth(),
		Errors:      []int{401, 500},
	}, func(_ context.Context, _ *struct{}) (*BrightnessResponse, error) {
		return s.readBrightness()
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-brightness",
		Method:      http.MethodPut,
		Path:        "/api/brightness",
		Summary:     "Set Brightness",
		Description: "Set the brightness of the bound graphics card, either in percent or raw.",
		Tags:        []string{"brightness"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 403, 500},
	}, func(_ context.Context, input *SetBrightnessRequest) (*BrightnessResponse, error) {
		if err := s.setBrightness(input); err != nil {
			return nil, err
		}
		return s.readBrightness()
	})
}

func (s *Server) readBrightness() (*BrightnessResponse, error) {
	b := s.options.Backlight

	raw, err := b.Raw()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to read brightness", err)
	}
	value, err := b.Value()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to read brightness", err)
	}
	percent, err := b.Percent()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to read brightness", err)
	}

	resp := &BrightnessResponse{}
	resp.Body.GraphicsCard = b.Name()
	resp.Body.Raw = raw
	resp.Body.Value = value
	resp.Body.Percent = percent
	resp.Body.Max = b.Max()
	return resp, nil
}

func (s *Server) setBrightness(input *SetBrightnessRequest) error {
	b := s.options.Backlight

	var err error
	switch {
	case input.Body.Percent != nil && input.Body.Raw != nil:
		return huma.Error400BadRequest("Provide either percent or raw, not both")
	case input.Body.Percent != nil:
		err = b.SetPercent(*input.Body.Percent)
	case input.Body.Raw != nil:
		err = b.SetRaw(*input.Body.Raw)
	default:
		return huma.Error400BadRequest("Provide percent or raw")
	}

	if s.options.Metrics != nil {
		s.options.Metrics.CountWrite(b.Name(), err)
	}

	if err != nil {
		var rangeErr *backlight.RangeError
		switch {
		case errors.As(err, &rangeErr):
			return huma.Error400BadRequest("Brightness out of range", err)
		case errors.Is(err, os.ErrPermission):
			return huma.Error403Forbidden("Cannot set brightness. Is the service running as root?", err)
		default:
			return huma.Error500InternalServerError("Failed to set brightness", err)
		}
	}

	value, _ := b.Value()
	percent, _ := b.Percent()
	if s.options.Metrics != nil {
		s.options.Metrics.ObserveBrightness(b.Name(), value, percent, b.Max())
	}
	if s.options.Bus != nil {
		s.options.Bus.Publish(events.BrightnessChangedEvent{
			GraphicsCard: b.Name(),
			Value:        value,
			Percent:      percent,
			Source:       "api",
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
		})
	}
	return nil
}
