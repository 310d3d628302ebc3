package components

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	// Spring physics parameters
	blinkAngularFrequency = 6.0
	blinkDampingRatio     = 0.5

	// The target flips once the spring is this close to it
	blinkFlipDistance = 0.1

	blinkLow  = 0.0
	blinkHigh = 1.0
)

// blinkFrames are ordered from dim to bright
var blinkFrames = []string{"·", "∙", "•", "●"}

// Blink is a pulsing dot driven by a spring that swings between dim and bright
type Blink struct {
	spring   harmonica.Spring
	position float64
	velocity float64
	target   float64
	active   bool
}

// NewBlink creates an idle pulse
func NewBlink() *Blink {
	return &Blink{
		spring: harmonica.NewSpring(harmonica.FPS(UITicksPerSecond), blinkAngularFrequency, blinkDampingRatio),
		target: blinkHigh,
	}
}

// Start begins pulsing
func (b *Blink) Start() {
	b.active = true
}

// Stop ends pulsing and resets to dim
func (b *Blink) Stop() {
	b.active = false
	b.position = blinkLow
	b.velocity = 0
	b.target = blinkHigh
}

// Update advances the spring by one UI tick
func (b *Blink) Update() {
	if !b.active {
		return
	}

	b.position, b.velocity = b.spring.Update(b.position, b.velocity, b.target)

	if math.Abs(b.target-b.position) < blinkFlipDistance {
		if b.target == blinkHigh {
			b.target = blinkLow
		} else {
			b.target = blinkHigh
		}
	}
}

// Frame returns the glyph for the current brightness
func (b *Blink) Frame() string {
	if !b.active {
		return blinkFrames[0]
	}

	p := min(max(b.position, blinkLow), blinkHigh)
	idx := int(math.Round(p * float64(len(blinkFrames)-1)))

	return blinkFrames[idx]
}

// Render returns the styled frame
func (b *Blink) Render(style lipgloss.Style) string {
	return style.Render(b.Frame())
}

// IsActive returns whether the pulse is running
func (b *Blink) IsActive() bool {
	return b.active
}
