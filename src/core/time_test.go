// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/ignis/src/core"
)

func TestFrameInterval(t *testing.T) {
	c := qt.New(t)
	c.Assert(core.FrameInterval(60), qt.Equals, time.Second/60)
	c.Assert(core.FrameInterval(0), qt.Equals, time.Nanosecond)
}

func TestTimeTicks(t *testing.T) {
	c := qt.New(t)

	tm := core.NewTime(core.TimeConfiguration{FramesPerSecond: 1000, EventPollDelay: 1})
	defer tm.Stop()
	c.Assert(tm.Fps(), qt.Equals, 1000)
	c.Assert(tm.FrameInterval(), qt.Equals, time.Millisecond)
	c.Assert(tm.EventPollDelay(), qt.Equals, time.Millisecond)

	deadline := time.After(5 * time.Second)
	for _, ticker := range []*time.Ticker{tm.FpsTicker(), tm.EventTicker()} {
		select {
		case <-ticker.C:
		case <-deadline:
			c.Fatal("ticker did not fire")
		}
	}
}

func TestTimeZeroPollDelay(t *testing.T) {
	c := qt.New(t)

	tm := core.NewTime(core.TimeConfiguration{})
	defer tm.Stop()
	c.Assert(tm.EventPollDelay(), qt.Equals, time.Millisecond)
}
