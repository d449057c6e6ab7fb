// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// LogicalDevice is a created device and the queues taken from it.
type LogicalDevice struct {
	Handle        DeviceHandle
	GraphicsQueue QueueHandle
	PresentQueue  QueueHandle
}

// DeviceOptions configure the logical device build.
type DeviceOptions struct {
	Extensions []string

	// Layers are only passed on when validation is enabled, older
	// implementations still look at device level layers.
	Validation bool
	Layers     []string
}

const maxQueuePriority = float32(1.0)

// BuildLogicalDevice creates the logical device with one queue from every
// distinct family in indices and fetches queue 0 for each role.
func BuildLogicalDevice(d Driver, dev PhysicalDeviceHandle, indices QueueFamilyIndices, opts DeviceOptions) (LogicalDevice, error) {
	var queues []DeviceQueueInfo
	for _, family := range indices.Unique() {
		queues = append(queues, DeviceQueueInfo{
			Family:     family,
			Priorities: []float32{maxQueuePriority},
		})
	}

	info := DeviceInfo{
		Queues:     queues,
		Extensions: opts.Extensions,
	}
	if opts.Validation {
		info.Layers = opts.Layers
	}

	handle, err := d.CreateDevice(dev, info)
	if err != nil {
		return LogicalDevice{}, nativeError(err, "vk.CreateDevice()")
	}

	return LogicalDevice{
		Handle:        handle,
		GraphicsQueue: d.DeviceQueue(handle, indices.Graphics, 0),
		PresentQueue:  d.DeviceQueue(handle, indices.Present, 0),
	}, nil
}
