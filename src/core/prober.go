// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "strings"

// Candidate is a physical device that passed every check,
// along with what was learned about it on the way.
type Candidate struct {
	Device     PhysicalDeviceHandle
	Properties PhysicalDeviceProperties
	Queues     QueueFamilyIndices
	Support    SwapchainSupport
}

// CheckDeviceCapabilities runs the checks that need no surface: the device
// has to be a discrete GPU, support geometry shaders and offer every
// required extension. The first failing check is returned.
func CheckDeviceCapabilities(d PhysicalDeviceQuerier, dev PhysicalDeviceHandle, requiredExtensions []string) error {
	properties := d.PhysicalDeviceProperties(dev)
	if properties.Type != DeviceTypeDiscreteGPU {
		return unsuitable("only discrete GPUs supported, device is %s", properties.Type)
	}

	features := d.PhysicalDeviceFeatures(dev)
	if !features.GeometryShader {
		return unsuitable("missing geometry shader support")
	}

	extensions, err := d.DeviceExtensions(dev)
	if err != nil {
		return nativeError(err, "vk.EnumerateDeviceExtensionProperties()")
	}
	if missing := missingNames(requiredExtensions, extensions); len(missing) > 0 {
		return unsuitable("device does not have required extensions: %s", strings.Join(missing, ", "))
	}
	return nil
}

// EvaluateDevice checks a device against everything a presentation context
// needs, in order, stopping at the first failure: device capabilities,
// queue families, then surface formats and present modes.
// It only queries, nothing is created.
func EvaluateDevice(d PhysicalDeviceQuerier, dev PhysicalDeviceHandle, surface SurfaceHandle, requiredExtensions []string) (Candidate, error) {
	if err := CheckDeviceCapabilities(d, dev, requiredExtensions); err != nil {
		return Candidate{}, err
	}

	queues, err := ResolveQueueFamilies(d, dev, surface)
	if err != nil {
		return Candidate{}, err
	}

	support, err := QuerySwapchainSupport(d, dev, surface)
	if err != nil {
		return Candidate{}, err
	}
	if !support.Adequate() {
		if len(support.Formats) == 0 {
			return Candidate{}, unsuitable("surface offers no formats")
		}
		return Candidate{}, unsuitable("surface offers no present modes")
	}

	return Candidate{
		Device:     dev,
		Properties: d.PhysicalDeviceProperties(dev),
		Queues:     queues,
		Support:    support,
	}, nil
}
