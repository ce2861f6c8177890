package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	now := RealClock{}.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, time.UTC, now.Location())
}

func TestFixed_Now(t *testing.T) {
	at := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, at, Fixed(at).Now())
}
