package events

import (
	"context"

	"github.com/looplab/fsm"

	"siemctl/internal/config/logger"
)

// FSM states
const (
	Idle    = "idle"
	Loading = "loading"
)

// FSM events
const (
	Fetch = "fetch"
	Done  = "done"
	Fail  = "fail"
	Abort = "abort"
)

// newLoaderFSM creates the machine that serialises page fetches
func newLoaderFSM(log logger.Logger) *fsm.FSM {
	return fsm.NewFSM(
		Idle,
		fsm.Events{
			{Name: Fetch, Src: []string{Idle}, Dst: Loading},
			{Name: Done, Src: []string{Loading}, Dst: Idle},
			{Name: Fail, Src: []string{Loading}, Dst: Idle},
			{Name: Abort, Src: []string{Loading}, Dst: Idle},
		},
		fsm.Callbacks{
			"after_event": func(_ context.Context, e *fsm.Event) {
				log.Debug().Msgf("LOADER %s → %s (trigger: %s)", e.Src, e.Dst, e.Event)
			},
		},
	)
}
