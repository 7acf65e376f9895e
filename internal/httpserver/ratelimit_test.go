package httpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newIPLimiter(6, 2)
	l.now = func() time.Time { return now }

	a := l.get("192.0.2.1")
	l.get("192.0.2.2")
	assert.Len(t, l.limiters, 2)

	now = now.Add(5 * time.Minute)
	assert.Same(t, a, l.get("192.0.2.1"), "active client keeps its bucket")

	// first sweep after the TTL: .2 idle past it, .1 seen 5m30s ago
	now = now.Add(limiterIdleTTL/2 + 30*time.Second)
	l.get("192.0.2.3")
	assert.Len(t, l.limiters, 2)
	assert.Contains(t, l.limiters, "192.0.2.1")
	assert.Contains(t, l.limiters, "192.0.2.3")
	assert.NotContains(t, l.limiters, "192.0.2.2")
}

func TestIPLimiter_IdleTTLCoversRefill(t *testing.T) {
	l := newIPLimiter(1, 30)
	assert.Equal(t, 30*time.Minute, l.idleTTL)
}
