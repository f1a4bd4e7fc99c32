// Package loop drives per-frame callbacks at a fixed rate.
package loop

import (
	"context"
	"errors"
	"time"
)

// ErrStop ends Run without an error when returned by a FrameFunc.
var ErrStop = errors.New("loop: stop")

// FrameFunc is called once per frame with the frame's start time.
type FrameFunc func(now time.Time) error

// Run calls frame once per rate until the context is cancelled or frame
// returns an error. Frames that overrun the rate start the next frame
// immediately instead of being skipped.
func Run(ctx context.Context, rate time.Duration, frame FrameFunc) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		frameStart := time.Now()
		if err := frame(frameStart); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}

		// Frame timing
		wait := rate - time.Since(frameStart)
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
