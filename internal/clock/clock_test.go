package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock(t *testing.T) {
	before := time.Now().Add(-time.Second)
	got := RealClock{}.Now()
	after := time.Now().Add(time.Second)

	assert.True(t, got.After(before))
	assert.True(t, got.Before(after))
}

func TestFixed(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)
	c := Fixed{T: at}

	assert.Equal(t, at, c.Now())
	assert.Equal(t, at, c.Now(), "fixed clock never advances")
}

func TestEpoch(t *testing.T) {
	c := Fixed{T: time.Unix(1_700_000_042, 999_000_000)}

	// Sub-second precision is dropped.
	assert.Equal(t, int64(1_700_000_042), Epoch(c))
}
