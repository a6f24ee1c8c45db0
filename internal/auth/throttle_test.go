package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginThrottle_PerUsernameBurst(t *testing.T) {
	th := NewLoginThrottle(0.0001, 3)
	for i := 0; i < 3; i++ {
		assert.True(t, th.Allow("alice"), "attempt %d", i)
	}
	assert.False(t, th.Allow("alice"))
	assert.False(t, th.Allow("  ALICE "), "keys are case and space insensitive")
	assert.True(t, th.Allow("bob"))
}

func TestLoginThrottle_Disabled(t *testing.T) {
	var nilThrottle *LoginThrottle
	off := NewLoginThrottle(0, 1)
	for i := 0; i < 100; i++ {
		assert.True(t, nilThrottle.Allow("alice"))
		assert.True(t, off.Allow("alice"))
	}
}

func TestLoginThrottle_BoundedMemory(t *testing.T) {
	th := NewLoginThrottle(1, 1)
	for i := 0; i < maxTrackedLogins+10; i++ {
		th.Allow(string(rune('a'+i%26)) + string(rune(i)))
	}
	assert.LessOrEqual(t, len(th.limiters), maxTrackedLogins)
}
