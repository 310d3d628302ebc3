package components

import "time"

// UI timing constants
const (
	// UITickInterval drives animations and tip rotation
	UITickInterval = 100 * time.Millisecond

	UITicksPerSecond = int(time.Second / UITickInterval)

	// StatsInterval is how often the footer samples own cpu and memory
	StatsInterval = 2 * time.Second

	// TipRotationTicks is the number of ticks a tip stays on screen
	TipRotationTicks = 80
)

// Console layout: everything above the table plus everything below it
const (
	HeaderLines    = 4
	FooterLines    = 4
	MinTableHeight = 3
)

// Header and footer separators
const (
	HeaderSeparatorMinWidth = 4
	HeaderFixedChars        = 10
	FooterSeparatorMinWidth = 4
	FooterFixedChars        = 5
)

// Event table column widths
const (
	ColWidthIndicator = 2
	ColWidthTimestamp = 20
	ColWidthAgent     = 14
	ColWidthType      = 12
	ColWidthSeverity  = 10
	ColWidthUser      = 12
	MessageMinWidth   = 20
	DefaultWidth      = 100
)

// Modal sizing relative to the terminal
const (
	ModalMarginX = 6
	ModalMarginY = 3
)
