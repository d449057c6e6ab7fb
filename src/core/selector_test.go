// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/devblok/ignis/src/core"
)

func TestSelectPhysicalDeviceFirstSuitable(t *testing.T) {
	c := qt.New(t)

	integrated := goodDevice("Integrated")
	integrated.properties.Type = core.DeviceTypeIntegratedGPU
	d := newDriver(integrated, goodDevice("First"), goodDevice("Second"))
	log, hook := test.NewNullLogger()

	candidate, err := core.SelectPhysicalDevice(d, 1, 1, required, log)
	c.Assert(err, qt.IsNil)
	c.Assert(candidate.Device, qt.Equals, core.PhysicalDeviceHandle(2))
	c.Assert(candidate.Properties.Name, qt.Equals, "First")

	entries := hook.AllEntries()
	c.Assert(entries, qt.HasLen, 2)
	c.Assert(entries[0].Level, qt.Equals, logrus.WarnLevel)
	c.Assert(entries[0].Data["device"], qt.Equals, "Integrated")
	c.Assert(entries[0].Data["reason"], qt.Equals, "only discrete GPUs supported, device is integrated GPU")
	c.Assert(entries[1].Level, qt.Equals, logrus.InfoLevel)
	c.Assert(entries[1].Data["device"], qt.Equals, "First")
}

func TestSelectPhysicalDeviceSkipsQueryErrors(t *testing.T) {
	c := qt.New(t)

	broken := goodDevice("Broken")
	broken.supportErr = errInjected
	d := newDriver(broken, goodDevice("Working"))
	log, hook := test.NewNullLogger()

	candidate, err := core.SelectPhysicalDevice(d, 1, 1, required, log)
	c.Assert(err, qt.IsNil)
	c.Assert(candidate.Properties.Name, qt.Equals, "Working")
	c.Assert(hook.AllEntries()[0].Data["device"], qt.Equals, "Broken")
}

func TestSelectPhysicalDeviceNoneSuitable(t *testing.T) {
	c := qt.New(t)

	cpu := goodDevice("CPU")
	cpu.properties.Type = core.DeviceTypeCPU
	noGeometry := goodDevice("NoGeometry")
	noGeometry.features.GeometryShader = false
	d := newDriver(cpu, noGeometry)
	log, hook := test.NewNullLogger()

	_, err := core.SelectPhysicalDevice(d, 1, 1, required, log)
	c.Assert(err, qt.ErrorIs, core.ErrNoSuitableDevice)
	c.Assert(err, qt.ErrorMatches, "none of 2 physical devices is suitable, last rejection: missing geometry shader support")
	c.Assert(hook.AllEntries(), qt.HasLen, 2)
}

func TestSelectPhysicalDeviceNoDevices(t *testing.T) {
	c := qt.New(t)
	log, _ := test.NewNullLogger()

	_, err := core.SelectPhysicalDevice(newDriver(), 1, 1, required, log)
	c.Assert(err, qt.ErrorIs, core.ErrNoSuitableDevice)
}

func TestSelectPhysicalDeviceEnumerateError(t *testing.T) {
	c := qt.New(t)
	log, _ := test.NewNullLogger()
	d := newDriver(goodDevice("GPU"))
	d.enumerateErr = errInjected

	_, err := core.SelectPhysicalDevice(d, 1, 1, required, log)
	c.Assert(err, qt.ErrorIs, core.ErrNativeCall)
	c.Assert(err, qt.ErrorIs, errInjected)
}
