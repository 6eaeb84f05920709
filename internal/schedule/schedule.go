// Package schedule holds a daily brightness plan: wall-clock minutes
// mapped to brightness percentages, loaded from a TOML file.
package schedule

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// TimeFormat is the timestamp layout used in schedule files.
const TimeFormat = "15:04"

// ErrNoLatestEntry indicates that no entry could be determined because
// the schedule is empty.
var ErrNoLatestEntry = errors.New("no latest schedule entry")

// Entry is a brightness percentage that takes effect at a given minute
// of the day.
type Entry struct {
	Minute  int // minutes since midnight
	Percent int
}

// Timestamp returns the entry's time of day in HH:MM form.
func (e Entry) Timestamp() string {
	return fmt.Sprintf("%02d:%02d", e.Minute/60, e.Minute%60)
}

// Schedule is a daily brightness plan. Entries are kept sorted by minute.
type Schedule struct {
	entries []Entry
}

// fileSchema is the on-disk layout: a [schedule] table mapping
// "HH:MM" timestamps to percentages.
type fileSchema struct {
	Schedule map[string]int `toml:"schedule"`
}

// Load reads a schedule file. A missing or unreadable file yields an
// empty schedule, matching a daemon that should still come up without
// configuration; parse errors of the TOML itself are returned.
func Load(path string, logger *slog.Logger) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Cannot read schedule file, starting empty", "path", path, "error", err)
		return &Schedule{}, nil
	}

	var raw fileSchema
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return Parse(raw.Schedule, logger), nil
}

// Parse builds a schedule from raw timestamp/percentage pairs. Entries
// with malformed timestamps or out-of-range percentages are skipped and
// logged, never fatal.
func Parse(raw map[string]int, logger *slog.Logger) *Schedule {
	entries := make([]Entry, 0, len(raw))

	for timestamp, percent := range raw {
		at, err := time.Parse(TimeFormat, timestamp)
		if err != nil {
			logger.Error("Skipping invalid timestamp", "timestamp", timestamp)
			continue
		}
		if percent < 0 || percent > 100 {
			logger.Error("Skipping invalid percentage", "timestamp", timestamp, "percent", percent)
			continue
		}

		entries = append(entries, Entry{
			Minute:  at.Hour()*60 + at.Minute(),
			Percent: percent,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Minute < entries[j].Minute
	})
	return &Schedule{entries: entries}
}

// Len returns the number of entries.
func (s *Schedule) Len() int {
	return len(s.entries)
}

// Entries returns the entries in chronological order.
func (s *Schedule) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// At returns the percentage scheduled for exactly the given time's
// minute, if any.
func (s *Schedule) At(now time.Time) (int, bool) {
	minute := now.Hour()*60 + now.Minute()
	for _, entry := range s.entries {
		if entry.Minute == minute {
			return entry.Percent, true
		}
	}
	return 0, false
}

// Latest returns the most recent entry at or before the given time.
// When the time lies before the first entry of the day, the last entry
// applies, carried over from the previous day. An empty schedule fails
// with ErrNoLatestEntry.
func (s *Schedule) Latest(now time.Time) (Entry, error) {
	if len(s.entries) == 0 {
		return Entry{}, ErrNoLatestEntry
	}

	minute := now.Hour()*60 + now.Minute()
	latest := Entry{Minute: -1}

	for _, entry := range s.entries {
		if entry.Minute > minute {
			break
		}
		latest = entry
	}

	if latest.Minute < 0 {
		return s.entries[len(s.entries)-1], nil
	}
	return latest, nil
}
