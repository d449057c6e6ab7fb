// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/devblok/ignis/src/core"
)

// The error kinds have to be visible to the standard library, not only to
// the errors package used to build them.
func TestErrorKindsWithStandardLibrary(t *testing.T) {
	log, _ := test.NewNullLogger()

	cpu := goodDevice("CPU")
	cpu.properties.Type = core.DeviceTypeCPU

	for _, tc := range []struct {
		name    string
		run     func() error
		kind    error
		message string
	}{{
		name: "native call",
		run: func() error {
			d := newDriver(goodDevice("GPU"))
			d.deviceErr = errInjected
			_, err := core.BuildLogicalDevice(d, 1, core.QueueFamilyIndices{}, core.DeviceOptions{})
			return err
		},
		kind:    core.ErrNativeCall,
		message: "vk.CreateDevice\\(\\): injected failure",
	}, {
		name: "loader",
		run: func() error {
			d := newDriver()
			d.loadErr = errInjected
			_, err := core.CreateInstance(d, instanceConfig(false), nil, log)
			return err
		},
		kind:    core.ErrLoaderFailure,
		message: "vk.Init\\(\\): injected failure",
	}, {
		name: "no suitable device",
		run: func() error {
			_, err := core.SelectPhysicalDevice(newDriver(cpu), 1, 1, required, log)
			return err
		},
		kind:    core.ErrNoSuitableDevice,
		message: "none of 1 physical devices is suitable, .*",
	}} {
		t.Run(tc.name, func(t *testing.T) {
			c := qt.New(t)
			err := tc.run()
			c.Assert(errors.Is(err, tc.kind), qt.IsTrue)
			c.Assert(err, qt.ErrorMatches, tc.message)
		})
	}
}

func TestNativeErrorKeepsCause(t *testing.T) {
	c := qt.New(t)
	d := newDriver(goodDevice("GPU"))
	d.imagesErr = errInjected

	_, err := core.BuildPresentationChain(d, 1, 7, 1, newWindow())
	c.Assert(errors.Is(err, core.ErrNativeCall), qt.IsTrue)
	c.Assert(errors.Is(err, errInjected), qt.IsTrue)
	c.Assert(errors.Is(err, core.ErrLoaderFailure), qt.IsFalse)
}
