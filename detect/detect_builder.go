package detect

import "time"

// DetectorOption is a functional option for configuring a Detector.
type DetectorOption func(*detectorImpl)

// WithProvider sets the source of permission decisions.
//
// Parameters:
//   - p: the provider
//
// Returns:
//   - DetectorOption: functional option to set the provider
func WithProvider(p PermissionProvider) DetectorOption {
	return func(d *detectorImpl) {
		if p != nil {
			d.provider = p
		}
	}
}

// WithClock replaces the clock used to stamp scan results.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - DetectorOption: functional option to set the clock
func WithClock(now func() time.Time) DetectorOption {
	return func(d *detectorImpl) {
		if now != nil {
			d.now = now
		}
	}
}
