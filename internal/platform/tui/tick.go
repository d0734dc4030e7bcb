// Package tui provides the Bubble Tea front end for the dungeon prototype:
// the frame loop, key mapping, rendering, the main menu and the history screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameTime caps the simulated time of one frame after a stall.
const maxFrameTime = 250 * time.Millisecond

// TickMsg is sent to trigger a simulation frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameSeconds returns the elapsed time between two ticks in seconds.
// The first frame uses the nominal interval; stalls are capped.
func frameSeconds(prev, now time.Time, tickRate int) float64 {
	if tickRate <= 0 {
		tickRate = 60
	}
	if prev.IsZero() || !now.After(prev) {
		return 1 / float64(tickRate)
	}
	return min(now.Sub(prev), maxFrameTime).Seconds()
}
