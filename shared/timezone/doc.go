// Package timezone renders booking and event timestamps in the configured
// APP_TIMEZONE and supplies the default Clock used by the booking domain.
// Timestamps are stored as instants; the location never affects ordering or
// expiry comparisons.
package timezone
