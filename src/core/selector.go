// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// SelectPhysicalDevice picks the first enumerated device that passes
// EvaluateDevice. Rejected devices are logged and skipped, there is no
// ranking between devices that pass.
func SelectPhysicalDevice(d Driver, instance InstanceHandle, surface SurfaceHandle, requiredExtensions []string, log logrus.FieldLogger) (Candidate, error) {
	devices, err := d.EnumeratePhysicalDevices(instance)
	if err != nil {
		return Candidate{}, nativeError(err, "vk.EnumeratePhysicalDevices()")
	}

	var last error
	for _, dev := range devices {
		name := d.PhysicalDeviceProperties(dev).Name

		candidate, err := EvaluateDevice(d, dev, surface, requiredExtensions)
		if err != nil {
			log.WithFields(logrus.Fields{
				"device": name,
				"reason": err.Error(),
			}).Warn("Skipping physical device")
			last = err
			continue
		}

		log.WithField("device", name).Info("Selected physical device")
		return candidate, nil
	}

	if last == nil {
		return Candidate{}, withKind(errors.New("no physical devices found"), ErrNoSuitableDevice)
	}
	return Candidate{}, withKind(
		errors.Newf("none of %d physical devices is suitable, last rejection: %v", len(devices), last),
		ErrNoSuitableDevice,
	)
}
