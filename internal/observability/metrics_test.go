package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountsAndSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/proxy/*", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/proxy/*", "GET", 200, 5*time.Millisecond)
	m.RecordError("/api/auth/login", "POST", "UNAUTHORIZED")
	m.RecordRefresh("guard", true)
	m.RecordRefresh("route", false)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/proxy/*|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/api/auth/login|POST|UNAUTHORIZED"])
	assert.Equal(t, int64(1), snap.Refreshes["guard|true"])
	assert.Equal(t, int64(1), snap.Refreshes["route|false"])
	assert.Equal(t, 15*time.Millisecond, snap.TotalDuration)

	// snapshot is a copy
	snap.Requests["/api/proxy/*|GET|200"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Requests["/api/proxy/*|GET|200"])
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordRefresh("route", true)
		_ = m.Snapshot()
	})
}
