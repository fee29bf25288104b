package timezone

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
)

const defaultTimezone = "UTC"

var (
	location     *time.Location
	locationOnce sync.Once
)

// Clock returns the current time. Components take one so tests can pin "now".
type Clock func() time.Time

// Load resolves an IANA timezone name, falling back to UTC when it is empty or unknown.
func Load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, using UTC")

		return time.UTC
	}

	return loc
}

// Location is the application timezone, read once from APP_TIMEZONE.
func Location() *time.Location {
	locationOnce.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			name = defaultTimezone
		}

		location = Load(name)
	})

	return location
}

// Now is the default Clock. Booking timestamps are compared as instants, so the
// location only matters for display.
func Now() time.Time {
	return time.Now().In(Location())
}

// Format renders t in the application timezone.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
