package schedule

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 1, hour, minute, 30, 0, time.Local)
}

func TestParseSkipsInvalidEntries(t *testing.T) {
	s := Parse(map[string]int{
		"07:30":    80,
		"22:00":    20,
		"25:99":    50,  // bad timestamp
		"midnight": 10,  // bad timestamp
		"12:00":    150, // bad percentage
		"13:00":    -5,  // bad percentage
	}, discard())

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	entries := s.Entries()
	if entries[0].Timestamp() != "07:30" || entries[1].Timestamp() != "22:00" {
		t.Errorf("Entries() = %v, want sorted 07:30, 22:00", entries)
	}
}

func TestLatest(t *testing.T) {
	s := Parse(map[string]int{
		"07:30": 80,
		"12:00": 100,
		"22:00": 20,
	}, discard())

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"exact match", at(7, 30), 80},
		{"between entries", at(9, 15), 80},
		{"after last", at(23, 45), 20},
		{"before first falls back to previous day", at(3, 0), 20},
		{"minute resolution", at(12, 0), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := s.Latest(tt.now)
			if err != nil {
				t.Fatalf("Latest() error = %v", err)
			}
			if entry.Percent != tt.want {
				t.Errorf("Latest(%s) = %d%%, want %d%%", tt.now.Format(TimeFormat), entry.Percent, tt.want)
			}
		})
	}
}

func TestLatestEmpty(t *testing.T) {
	s := Parse(nil, discard())

	if _, err := s.Latest(at(12, 0)); !errors.Is(err, ErrNoLatestEntry) {
		t.Errorf("Latest() error = %v, want ErrNoLatestEntry", err)
	}
}

func TestAt(t *testing.T) {
	s := Parse(map[string]int{"07:30": 80}, discard())

	if percent, ok := s.At(at(7, 30)); !ok || percent != 80 {
		t.Errorf("At(07:30) = %d, %v, want 80, true", percent, ok)
	}
	if _, ok := s.At(at(7, 31)); ok {
		t.Error("At(07:31) = true, want false")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backlight.toml")
	content := "[schedule]\n\"07:30\" = 80\n\"22:00\" = 20\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path, discard())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"), discard())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backlight.toml")
	if err := os.WriteFile(path, []byte("[schedule\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path, discard()); err == nil {
		t.Error("Load() = nil error for malformed TOML")
	}
}
