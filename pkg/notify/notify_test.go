package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestChannelDropsWhenFull(t *testing.T) {
	c := NewChannel(1)
	c.Notify(Successf("Cell added successfully"))
	c.Notify(Errorf("Failed to add cell"))

	got := <-c.C()
	assert.Equal(t, "Cell added successfully", got.Description)
	assert.Equal(t, Success, got.Severity)
	select {
	case extra := <-c.C():
		t.Fatalf("expected dropped notification, got %v", extra)
	default:
	}
}

func TestNewStampsID(t *testing.T) {
	a := New(Info, "Settings Saved", "All settings have been updated successfully")
	b := New(Info, "Settings Saved", "All settings have been updated successfully")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Raised.IsZero())
}

func TestLogSinkLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := Log{Logger: zap.New(core)}

	sink.Notify(Errorf("Failed to update status"))
	sink.Notify(Successf("Inmate removed successfully"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "Inmate removed successfully", entries[1].ContextMap()["description"])
}

type countingCounter map[string]int

func (c countingCounter) ObserveNotification(sev string) { c[sev]++ }

func TestMultiAndCounted(t *testing.T) {
	rec := &Recorder{}
	counter := countingCounter{}
	sink := Multi{Counted{Counter: counter, Next: rec}, nil, Discard}

	sink.Notify(Successf("Visitor scheduled successfully"))
	sink.Notify(Errorf("Please fill in all required fields"))

	assert.Len(t, rec.All(), 2)
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Error", last.Title)
	assert.Equal(t, 1, counter["success"])
	assert.Equal(t, 1, counter["error"])

	rec.Reset()
	_, ok = rec.Last()
	assert.False(t, ok)
}
