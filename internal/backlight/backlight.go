package backlight

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultDir is where the kernel exposes backlight devices.
const DefaultDir = "/sys/class/backlight"

const (
	brightnessFile       = "brightness"
	actualBrightnessFile = "actual_brightness"
	maxBrightnessFile    = "max_brightness"
)

// Root is a backlight class directory. Each immediate subdirectory is a
// candidate graphics card named by its directory name. The zero value is
// not usable; construct with NewRoot or use the package-level functions,
// which operate on DefaultDir.
type Root struct {
	dir string
}

// NewRoot returns a Root over the given class directory.
func NewRoot(dir string) Root {
	return Root{dir: dir}
}

// Dir returns the class directory this Root operates on.
func (r Root) Dir() string {
	return r.dir
}

// Exists reports whether a device directory of the given name exists.
func (r Root) Exists(name string) bool {
	info, err := os.Stat(filepath.Join(r.dir, name))
	return err == nil && info.IsDir()
}

// SupportsAPI reports whether the device implements the backlight API,
// i.e. provides regular brightness and max_brightness attribute files.
// A missing device is reported as unsupported, never as an error.
func (r Root) SupportsAPI(name string) bool {
	for _, file := range []string{brightnessFile, maxBrightnessFile} {
		info, err := os.Stat(filepath.Join(r.dir, name, file))
		if err != nil || !info.Mode().IsRegular() {
			return false
		}
	}
	return true
}

// Validate checks the named device for existence and API support.
func (r Root) Validate(name string) error {
	if !r.Exists(name) {
		return fmt.Errorf("%s: %w", name, ErrDoesNotExist)
	}
	if !r.SupportsAPI(name) {
		return fmt.Errorf("%s: %w", name, ErrDoesNotSupportAPI)
	}
	return nil
}

// Devices returns the names of all device directories under the root in
// the order the OS yields them.
func (r Root) Devices() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// Backlight is a handle on one validated graphics card. It holds the card
// name and the cached maximum brightness; the current brightness is read
// fresh from and written straight to the device on every access.
type Backlight struct {
	root Root
	name string
	max  int
}

// Open validates the named graphics card and returns a handle on it.
// Fails with ErrDoesNotExist or ErrDoesNotSupportAPI.
func (r Root) Open(name string) (*Backlight, error) {
	if err := r.Validate(name); err != nil {
		return nil, err
	}

	b := &Backlight{root: r, name: name}
	max, err := b.readInt(b.maxFile())
	if err != nil {
		// SupportsAPI confirmed the file exists, so this only happens
		// when the device disappears or reports garbage.
		return nil, fmt.Errorf("%s: reading maximum brightness: %w", name, err)
	}

	b.max = max
	return b, nil
}

// Select tries the pool of card names in order and returns a handle on the
// first one that opens. A nil or empty pool falls back to every device
// under the root in enumeration order. Individual failures are discarded;
// if no candidate opens, Select fails with ErrNoSupportedGraphicsCards.
func (r Root) Select(pool []string) (*Backlight, error) {
	if len(pool) == 0 {
		var err error
		if pool, err = r.Devices(); err != nil {
			return nil, ErrNoSupportedGraphicsCards
		}
	}

	for _, name := range pool {
		if b, err := r.Open(name); err == nil {
			return b, nil
		}
	}
	return nil, ErrNoSupportedGraphicsCards
}

// Open returns a handle on the named graphics card under DefaultDir.
func Open(name string) (*Backlight, error) {
	return NewRoot(DefaultDir).Open(name)
}

// Select returns a handle on the first usable card under DefaultDir.
func Select(pool []string) (*Backlight, error) {
	return NewRoot(DefaultDir).Select(pool)
}

// Name returns the graphics card's name.
func (b *Backlight) Name() string {
	return b.name
}

// String implements fmt.Stringer.
func (b *Backlight) String() string {
	return b.name
}

// Max returns the maximum brightness. The value reflects hardware
// capability, not state, and is cached for the handle's lifetime.
func (b *Backlight) Max() int {
	return b.max
}

// Raw returns the current brightness exactly as the device reports it,
// trimmed of surrounding whitespace.
func (b *Backlight) Raw() (string, error) {
	data, err := os.ReadFile(b.getterFile())
	if err != nil {
		return "", fmt.Errorf("%s: reading brightness: %w", b.name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetRaw writes the given text to the brightness file. The text must parse
// as a base-10 integer within [0, Max]; otherwise SetRaw fails with a
// *RangeError and nothing is written. All setters funnel through here.
func (b *Backlight) SetRaw(raw string) error {
	raw = strings.TrimSpace(raw)

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 || value > b.max {
		return &RangeError{Value: raw, Min: 0, Max: b.max}
	}

	if err := os.WriteFile(b.setterFile(), []byte(raw+"\n"), 0o644); err != nil {
		return fmt.Errorf("%s: writing brightness: %w", b.name, err)
	}
	return nil
}

// Value returns the current brightness as an integer.
func (b *Backlight) Value() (int, error) {
	raw, err := b.Raw()
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: device reported non-numeric brightness %q", b.name, raw)
	}
	return value, nil
}

// SetValue sets the brightness to the given integer, which must lie
// within [0, Max].
func (b *Backlight) SetValue(value int) error {
	return b.SetRaw(strconv.Itoa(value))
}

// Percent returns the current brightness as a percentage of the maximum,
// rounded half up. A device reporting a maximum of zero has no brightness
// range at all and is rejected rather than mapped to zero.
func (b *Backlight) Percent() (int, error) {
	value, err := b.Value()
	if err != nil {
		return 0, err
	}

	if b.max == 0 {
		return 0, fmt.Errorf("%s: device reports zero brightness range", b.name)
	}
	return roundDiv(value*100, b.max), nil
}

// SetPercent sets the brightness to the given percentage of the maximum,
// rounded half up with the same rule Percent uses, so setting the value
// Percent returned is stable. Fails with a *RangeError unless 0 <= p <= 100.
func (b *Backlight) SetPercent(percent int) error {
	if percent < 0 || percent > 100 {
		return &RangeError{Value: strconv.Itoa(percent), Min: 0, Max: 100}
	}
	return b.SetValue(roundDiv(percent*b.max, 100))
}

func (b *Backlight) path() string {
	return filepath.Join(b.root.dir, b.name)
}

func (b *Backlight) maxFile() string {
	return filepath.Join(b.path(), maxBrightnessFile)
}

func (b *Backlight) setterFile() string {
	return filepath.Join(b.path(), brightnessFile)
}

// getterFile prefers actual_brightness, which reports what the hardware is
// doing, and falls back to brightness on devices that omit it.
func (b *Backlight) getterFile() string {
	actual := filepath.Join(b.path(), actualBrightnessFile)
	if info, err := os.Stat(actual); err == nil && info.Mode().IsRegular() {
		return actual
	}
	return b.setterFile()
}

func (b *Backlight) readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// roundDiv divides a by b, rounding half up. Inputs are non-negative.
func roundDiv(a, b int) int {
	return (2*a + b) / (2 * b)
}
