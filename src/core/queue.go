// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// QueueFamilyIndices are the queue families serving each role.
// Both roles may be served by the same family.
type QueueFamilyIndices struct {
	Graphics uint32
	Present  uint32
}

// Unique returns the distinct families, graphics first.
func (q QueueFamilyIndices) Unique() []uint32 {
	if q.Graphics == q.Present {
		return []uint32{q.Graphics}
	}
	return []uint32{q.Graphics, q.Present}
}

// ResolveQueueFamilies finds the first graphics capable family and,
// independently, the first family that can present to surface.
func ResolveQueueFamilies(d PhysicalDeviceQuerier, dev PhysicalDeviceHandle, surface SurfaceHandle) (QueueFamilyIndices, error) {
	families := d.QueueFamilyProperties(dev)

	var (
		indices                 QueueFamilyIndices
		hasGraphics, hasPresent bool
	)
	for i, family := range families {
		if family.Flags&QueueGraphics != 0 {
			indices.Graphics = uint32(i)
			hasGraphics = true
			break
		}
	}

	for i := range families {
		supported, err := d.SurfaceSupport(dev, uint32(i), surface)
		if err != nil {
			return QueueFamilyIndices{}, nativeError(err, "vk.GetPhysicalDeviceSurfaceSupport()")
		}
		if supported {
			indices.Present = uint32(i)
			hasPresent = true
			break
		}
	}

	switch {
	case !hasGraphics && !hasPresent:
		return QueueFamilyIndices{}, unsuitable("missing graphics and present queue families")
	case !hasGraphics:
		return QueueFamilyIndices{}, unsuitable("missing graphics queue family")
	case !hasPresent:
		return QueueFamilyIndices{}, unsuitable("missing present queue family")
	}
	return indices, nil
}
