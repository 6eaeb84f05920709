package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/homeinfogmbh/backlight/internal/backlight"
	"github.com/homeinfogmbh/backlight/internal/events"
)

func fakeRoot(t *testing.T, max, current int) (backlight.Root, *backlight.Backlight) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "acpi_video0")
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"max_brightness": strconv.Itoa(max) + "\n",
		"brightness":     strconv.Itoa(current) + "\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(path, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	root := backlight.NewRoot(dir)
	b, err := root.Open("acpi_video0")
	if err != nil {
		t.Fatal(err)
	}
	return root, b
}

func testServer(t *testing.T, opts *Options) *Server {
	t.Helper()
	if opts.Backlight == nil {
		opts.Root, opts.Backlight = fakeRoot(t, 255, 128)
	}
	if opts.Bus == nil {
		opts.Bus = events.New()
	}
	return NewServer(opts)
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)
	return rec
}

func TestGetBrightness(t *testing.T) {
	s := testServer(t, &Options{})

	rec := do(s, http.MethodGet, "/api/brightness", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/brightness = %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		GraphicsCard string `json:"graphics_card"`
		Raw          string `json:"raw"`
		Value        int    `json:"value"`
		Percent      int    `json:"percent"`
		Max          int    `json:"max"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if body.GraphicsCard != "acpi_video0" || body.Value != 128 || body.Percent != 50 || body.Max != 255 || body.Raw != "128" {
		t.Errorf("body = %+v", body)
	}
}

func TestSetBrightnessPercent(t *testing.T) {
	s := testServer(t, &Options{})

	rec := do(s, http.MethodPut, "/api/brightness", `{"percent": 75}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /api/brightness = %d: %s", rec.Code, rec.Body.String())
	}

	if v, _ := s.options.Backlight.Value(); v != 191 {
		t.Errorf("Value() = %d after PUT percent 75, want 191", v)
	}
}

func TestSetBrightnessRaw(t *testing.T) {
	s := testServer(t, &Options{})

	rec := do(s, http.MethodPut, "/api/brightness", `{"raw": "42"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /api/brightness = %d: %s", rec.Code, rec.Body.String())
	}

	if raw, _ := s.options.Backlight.Raw(); raw != "42" {
		t.Errorf("Raw() = %q, want %q", raw, "42")
	}
}

func TestSetBrightnessRawOutOfRange(t *testing.T) {
	s := testServer(t, &Options{})

	rec := do(s, http.MethodPut, "/api/brightness", `{"raw": "9000"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("PUT /api/brightness = %d, want 400", rec.Code)
	}

	if v, _ := s.options.Backlight.Value(); v != 128 {
		t.Errorf("Value() = %d after rejected write, want 128", v)
	}
}

func TestSetBrightnessRejectsBothUnits(t *testing.T) {
	s := testServer(t, &Options{})

	rec := do(s, http.MethodPut, "/api/brightness", `{"percent": 50, "raw": "10"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PUT with both units = %d, want 400", rec.Code)
	}
}

func TestSetBrightnessPublishesEvent(t *testing.T) {
	bus := events.New()
	received := make(chan events.BrightnessChangedEvent, 1)
	defer bus.Subscribe(func(e events.BrightnessChangedEvent) { received <- e })()

	s := testServer(t, &Options{Bus: bus})
	do(s, http.MethodPut, "/api/brightness", `{"percent": 20}`)

	// Dispatch is asynchronous.
	select {
	case e := <-received:
		if e.Source != "api" || e.Percent != 20 {
			t.Errorf("event = %+v", e)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no BrightnessChangedEvent published")
	}
}

func TestListDevices(t *testing.T) {
	s := testServer(t, &Options{})
	// An unsupported sibling directory.
	if err := os.MkdirAll(filepath.Join(s.options.Root.Dir(), "bare"), 0o755); err != nil {
		t.Fatal(err)
	}

	rec := do(s, http.MethodGet, "/api/devices", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/devices = %d", rec.Code)
	}

	var body struct {
		Devices []DeviceInfo `json:"devices"`
		Count   int          `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 2 {
		t.Fatalf("Count = %d, want 2", body.Count)
	}

	supported := map[string]bool{}
	for _, d := range body.Devices {
		supported[d.Name] = d.Supported
	}
	if !supported["acpi_video0"] || supported["bare"] {
		t.Errorf("supported = %v", supported)
	}
}

func TestBasicAuth(t *testing.T) {
	s := testServer(t, &Options{AuthUsername: "admin", AuthPassword: "secret"})

	if rec := do(s, http.MethodGet, "/api/brightness", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated request = %d, want 401", rec.Code)
	}

	// Health stays open.
	if rec := do(s, http.MethodGet, "/api/health", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /api/health = %d, want 200", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/brightness", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:secret")))
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated request = %d, want 200", rec.Code)
	}
}

func TestHealthAndVersion(t *testing.T) {
	s := testServer(t, &Options{})

	if rec := do(s, http.MethodGet, "/api/health", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /api/health = %d", rec.Code)
	}
	if rec := do(s, http.MethodGet, "/api/version", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /api/version = %d", rec.Code)
	}
}
