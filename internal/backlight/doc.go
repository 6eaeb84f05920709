// Package backlight gets and sets the screen backlight brightness of
// graphics cards under /sys/class/backlight/<graphics_card>/, provided
// they implement the files brightness and max_brightness in the
// respective directory.
//
// Open a specific card, or let Select pick the first usable one:
//
//	b, err := backlight.Select(nil)
//	if err != nil {
//		// errors.Is(err, backlight.ErrNoSupportedGraphicsCards)
//	}
//	percent, _ := b.Percent()
//	_ = b.SetPercent(75)
//
// The package keeps no state beyond the per-handle cached maximum: every
// read hits the device files and every write goes straight through. There
// is no locking; concurrent writers race at the filesystem level exactly
// as two processes writing the sysfs file would.
package backlight
