// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/ignis/src/core"
)

func TestResolveQueueFamiliesFirstMatch(t *testing.T) {
	c := qt.New(t)

	dev := goodDevice("GPU")
	dev.families = []core.QueueFamilyProperties{
		{Flags: core.QueueTransfer, Count: 2},
		{Flags: core.QueueGraphics, Count: 16},
		{Flags: core.QueueGraphics | core.QueueCompute, Count: 16},
		{Flags: core.QueueCompute, Count: 8},
	}
	dev.present = map[uint32]bool{2: true, 3: true}
	d := newDriver(dev)

	indices, err := core.ResolveQueueFamilies(d, 1, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(indices, qt.Equals, core.QueueFamilyIndices{Graphics: 1, Present: 2})
	c.Assert(indices.Unique(), qt.DeepEquals, []uint32{1, 2})
}

func TestResolveQueueFamiliesSameFamily(t *testing.T) {
	c := qt.New(t)
	d := newDriver(goodDevice("GPU"))

	indices, err := core.ResolveQueueFamilies(d, 1, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(indices.Unique(), qt.DeepEquals, []uint32{0})
}

func TestResolveQueueFamiliesSupportError(t *testing.T) {
	c := qt.New(t)

	dev := goodDevice("GPU")
	dev.supportErr = errInjected
	d := newDriver(dev)

	_, err := core.ResolveQueueFamilies(d, 1, 1)
	c.Assert(err, qt.ErrorIs, core.ErrNativeCall)
	c.Assert(err, qt.ErrorMatches, "vk.GetPhysicalDeviceSurfaceSupport\\(\\): injected failure")
}
