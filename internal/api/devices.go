package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// registerDeviceRoutes registers the device enumeration endpoint.
func (s *Server) registerDeviceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-devices",
		Method:      http.MethodGet,
		Path:        "/api/devices",
		Summary:     "List Devices",
		Description: "List all candidate devices under the backlight root and whether each implements the API.",
		Tags:        []string{"devices"},
		Security:    withAuth(),
		Errors:      []int{401, 500},
	}, func(_ context.Context, _ *struct{}) (*DevicesResponse, error) {
		names, err := s.options.Root.Devices()
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to list devices", err)
		}

		resp := &DevicesResponse{}
		resp.Body.Devices = make([]DeviceInfo, 0, len(names))
		for _, name := range names {
			resp.Body.Devices = append(resp.Body.Devices, DeviceInfo{
				Name:      name,
				Supported: s.options.Root.SupportsAPI(name),
			})
		}
		resp.Body.Count = len(resp.Body.Devices)
		return resp, nil
	})
}
