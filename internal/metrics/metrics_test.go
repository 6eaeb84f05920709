package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestObserveBrightness(t *testing.T) {
	m := New()
	m.ObserveBrightness("acpi_video0", 191, 75, 255)
	m.CountWrite("acpi_video0", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`backlight_brightness{graphics_card="acpi_video0"} 191`,
		`backlight_brightness_percent{graphics_card="acpi_video0"} 75`,
		`backlight_max_brightness{graphics_card="acpi_video0"} 255`,
		`backlight_writes_total{graphics_card="acpi_video0",outcome="ok"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestCountWriteOutcomes(t *testing.T) {
	m := New()
	m.CountWrite("card0", nil)
	m.CountWrite("card0", errTest)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `outcome="ok"} 1`) || !strings.Contains(body, `outcome="error"} 1`) {
		t.Errorf("write outcomes not counted separately:\n%s", body)
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "test" }
