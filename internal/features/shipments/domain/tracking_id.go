package domain

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
)

// DefaultTrackingPrefix is used when no prefix is configured.
const DefaultTrackingPrefix = "SCS"

// trackingSuffixSpace is the number of distinct suffixes per prefix and day.
const trackingSuffixSpace = 1000

var trackingIDPattern = regexp.MustCompile(`^[A-Z0-9]+-[0-9]{8}-(0|[1-9][0-9]{0,2})$`)

// IsTrackingID reports whether s has the PREFIX-YYYYMMDD-NNN shape.
func IsTrackingID(s string) bool {
	return trackingIDPattern.MatchString(s)
}

// TrackingIDGenerator builds tracking codes from the creation date and a
// random suffix in [0, 999]. The suffix is not zero padded, so two shipments
// created on the same day can collide; Create retries on ErrConflict.
type TrackingIDGenerator struct {
	prefix string
	suffix func() int
}

// NewTrackingIDGenerator returns a generator using prefix, or DefaultTrackingPrefix when empty.
func NewTrackingIDGenerator(prefix string) *TrackingIDGenerator {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = DefaultTrackingPrefix
	}
	return &TrackingIDGenerator{
		prefix: prefix,
		suffix: func() int { return rand.IntN(trackingSuffixSpace) },
	}
}

// WithSuffixSource replaces the random suffix source. Values are reduced into [0, 999].
func (g *TrackingIDGenerator) WithSuffixSource(next func() int) *TrackingIDGenerator {
	g.suffix = func() int {
		n := next() % trackingSuffixSpace
		if n < 0 {
			n += trackingSuffixSpace
		}
		return n
	}
	return g
}

// Generate returns a tracking code for a shipment created at now.
func (g *TrackingIDGenerator) Generate(now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", g.prefix, now.UTC().Format("20060102"), g.suffix())
}
