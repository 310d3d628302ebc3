package monitor

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetStats_OutOfRangePID(t *testing.T) {
	m := NewMonitor()

	tests := []struct {
		name string
		pid  int
	}{
		{name: "zero PID", pid: 0},
		{name: "negative PID", pid: -1},
		{name: "above int32", pid: 2147483648},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := m.GetStats(context.Background(), tt.pid)

			assert.NoError(t, err)
			assert.Equal(t, Stats{}, stats)
		})
	}
}

func Test_Self(t *testing.T) {
	m := NewMonitor()

	stats, err := m.Self(context.Background())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.CPU, 0.0)
	assert.Greater(t, stats.MEM, 0.0)

	same, err := m.GetStats(context.Background(), os.Getpid())
	require.NoError(t, err)
	assert.Greater(t, same.MEM, 0.0)
}

func Test_GetStats_NonExistentProcess(t *testing.T) {
	_, err := NewMonitor().GetStats(context.Background(), 999999999)

	assert.Error(t, err)
}

func Test_Stats_String(t *testing.T) {
	assert.Equal(t, "cpu 2.5% · mem 31.3 MB", Stats{CPU: 2.5, MEM: 31.3}.String())
}
