package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitorCounters(t *testing.T) {
	m := &Monitor{}

	m.RecordStoreReadError()
	m.RecordStoreWriteError()
	m.RecordPublish()
	m.RecordWatchDelivery()
	m.RecordPollDelivery()
	m.RecordPollCycle()
	m.RecordMessageAppended()
	m.RecordMessageAppended()

	assert.Equal(t, int64(1), m.StoreReadErrors)
	assert.Equal(t, int64(1), m.StoreWriteErrors)
	assert.Equal(t, int64(1), m.UpdatesPublished)
	assert.Equal(t, int64(1), m.WatchDeliveries)
	assert.Equal(t, int64(1), m.PollDeliveries)
	assert.Equal(t, int64(2), m.MessagesAppended)
	assert.False(t, m.LastDelivery.IsZero())
	assert.False(t, m.LastStoreError.IsZero())

	stats := m.GetStats()
	errors, ok := stats["errors"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, int64(1), errors["store_read"])

	m.Reset()
	assert.Equal(t, int64(0), m.StoreReadErrors)
	assert.Equal(t, int64(0), m.MessagesAppended)
}
