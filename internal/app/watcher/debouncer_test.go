package watcher

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Debouncer_Trigger(t *testing.T) {
	var called atomic.Int32

	d := NewDebouncer(50*time.Millisecond, func() {
		called.Add(1)
	})
	defer d.Stop()

	d.Trigger()
	d.Trigger()
	d.Trigger()

	assert.Eventually(t, func() bool { return called.Load() == 1 }, time.Second, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), called.Load())
}

func Test_Debouncer_CoalescesRapidEvents(t *testing.T) {
	var called atomic.Int32

	d := NewDebouncer(50*time.Millisecond, func() {
		called.Add(1)
	})
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, int32(1), called.Load())
}

func Test_Debouncer_SeparateBursts(t *testing.T) {
	var called atomic.Int32

	d := NewDebouncer(20*time.Millisecond, func() {
		called.Add(1)
	})
	defer d.Stop()

	d.Trigger()
	assert.Eventually(t, func() bool { return called.Load() == 1 }, time.Second, 5*time.Millisecond)

	d.Trigger()
	assert.Eventually(t, func() bool { return called.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func Test_Debouncer_Stop(t *testing.T) {
	var called atomic.Int32

	d := NewDebouncer(50*time.Millisecond, func() {
		called.Add(1)
	})

	d.Trigger()
	d.Stop()
	d.Trigger()

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(0), called.Load())
}
