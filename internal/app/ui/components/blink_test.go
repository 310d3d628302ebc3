package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func Test_Blink_Lifecycle(t *testing.T) {
	b := NewBlink()

	assert.False(t, b.IsActive())
	assert.Equal(t, "·", b.Frame())

	b.Update()
	assert.Equal(t, "·", b.Frame(), "an idle pulse does not move")

	b.Start()
	assert.True(t, b.IsActive())

	seen := map[string]bool{}
	for range 60 {
		b.Update()
		seen[b.Frame()] = true
	}

	assert.True(t, seen["●"], "reaches full brightness")
	assert.True(t, len(seen) > 2, "passes through intermediate frames")

	b.Stop()
	assert.False(t, b.IsActive())
	assert.Equal(t, "·", b.Frame())
}

func Test_Blink_FlipsDirection(t *testing.T) {
	b := NewBlink()
	b.Start()

	for range 60 {
		b.Update()
	}

	before := b.target

	for range 60 {
		b.Update()
	}

	assert.Contains(t, []float64{blinkLow, blinkHigh}, before)
	assert.GreaterOrEqual(t, b.position, -1.0)
	assert.LessOrEqual(t, b.position, 2.0)
}

func Test_Blink_Render(t *testing.T) {
	b := NewBlink()

	assert.Contains(t, b.Render(lipgloss.NewStyle()), "·")
}
