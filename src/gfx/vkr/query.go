// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"

	"github.com/devblok/ignis/src/core"
)

// PhysicalDeviceProperties implements core.PhysicalDeviceQuerier
func (d *Driver) PhysicalDeviceProperties(h core.PhysicalDeviceHandle) core.PhysicalDeviceProperties {
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(d.physicalDevice(h), &props)
	props.Deref()

	return core.PhysicalDeviceProperties{
		Name:          vk.ToString(props.DeviceName[:]),
		Type:          core.DeviceType(props.DeviceType),
		VendorID:      props.VendorID,
		DeviceID:      props.DeviceID,
		DriverVersion: props.DriverVersion,
		APIVersion:    props.ApiVersion,
	}
}

// PhysicalDeviceFeatures implements core.PhysicalDeviceQuerier
func (d *Driver) PhysicalDeviceFeatures(h core.PhysicalDeviceHandle) core.PhysicalDeviceFeatures {
	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(d.physicalDevice(h), &features)
	features.Deref()

	return core.PhysicalDeviceFeatures{
		GeometryShader: features.GeometryShader.B(),
	}
}

// PhysicalDeviceMemory implements core.PhysicalDeviceQuerier
func (d *Driver) PhysicalDeviceMemory(h core.PhysicalDeviceHandle) uint64 {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(d.physicalDevice(h), &memoryProperties)
	memoryProperties.Deref()

	var total uint64
	for i := uint32(0); i < memoryProperties.MemoryHeapCount; i++ {
		memoryProperties.MemoryHeaps[i].Deref()
		total += uint64(memoryProperties.MemoryHeaps[i].Size)
	}
	return total
}

// DeviceExtensions implements core.PhysicalDeviceQuerier
func (d *Driver) DeviceExtensions(h core.PhysicalDeviceHandle) ([]string, error) {
	dev := d.physicalDevice(h)

	var count uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(dev, "", &count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(dev, "", &count, props)); err != nil {
		return nil, err
	}
	return extensionNames(props[:count]), nil
}

// DeviceLayers implements core.PhysicalDeviceQuerier
func (d *Driver) DeviceLayers(h core.PhysicalDeviceHandle) ([]string, error) {
	dev := d.physicalDevice(h)

	var count uint32
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(dev, &count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(dev, &count, props)); err != nil {
		return nil, err
	}
	return layerNames(props[:count]), nil
}

// QueueFamilyProperties implements core.PhysicalDeviceQuerier
func (d *Driver) QueueFamilyProperties(h core.PhysicalDeviceHandle) []core.QueueFamilyProperties {
	dev := d.physicalDevice(h)

	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(dev, &count, nil)
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(dev, &count, families)

	props := make([]core.QueueFamilyProperties, 0, count)
	for _, family := range families[:count] {
		family.Deref()
		props = append(props, core.QueueFamilyProperties{
			Flags: core.QueueFlags(family.QueueFlags),
			Count: family.QueueCount,
		})
	}
	return props
}

// SurfaceSupport implements core.PhysicalDeviceQuerier
func (d *Driver) SurfaceSupport(h core.PhysicalDeviceHandle, family uint32, s core.SurfaceHandle) (bool, error) {
	var supported vk.Bool32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(d.physicalDevice(h), family, d.surface(s), &supported)); err != nil {
		return false, err
	}
	return supported.B(), nil
}

// SurfaceCapabilities implements core.PhysicalDeviceQuerier
func (d *Driver) SurfaceCapabilities(h core.PhysicalDeviceHandle, s core.SurfaceHandle) (core.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(d.physicalDevice(h), d.surface(s), &caps)); err != nil {
		return core.SurfaceCapabilities{}, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	return core.SurfaceCapabilities{
		MinImageCount:    caps.MinImageCount,
		MaxImageCount:    caps.MaxImageCount,
		CurrentExtent:    extent(caps.CurrentExtent),
		MinImageExtent:   extent(caps.MinImageExtent),
		MaxImageExtent:   extent(caps.MaxImageExtent),
		CurrentTransform: core.SurfaceTransform(caps.CurrentTransform),
	}, nil
}

// SurfaceFormats implements core.PhysicalDeviceQuerier
func (d *Driver) SurfaceFormats(h core.PhysicalDeviceHandle, s core.SurfaceHandle) ([]core.SurfaceFormat, error) {
	dev, surface := d.physicalDevice(h), d.surface(s)

	var count uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(dev, surface, &count, nil)); err != nil {
		return nil, err
	}
	formats := make([]vk.SurfaceFormat, count)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(dev, surface, &count, formats)); err != nil {
		return nil, err
	}

	result := make([]core.SurfaceFormat, 0, count)
	for _, f := range formats[:count] {
		f.Deref()
		result = append(result, core.SurfaceFormat{
			Format:     core.Format(f.Format),
			ColorSpace: core.ColorSpace(f.ColorSpace),
		})
	}
	return result, nil
}

// SurfacePresentModes implements core.PhysicalDeviceQuerier
func (d *Driver) SurfacePresentModes(h core.PhysicalDeviceHandle, s core.SurfaceHandle) ([]core.PresentMode, error) {
	dev, surface := d.physicalDevice(h), d.surface(s)

	var count uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(dev, surface, &count, nil)); err != nil {
		return nil, err
	}
	modes := make([]vk.PresentMode, count)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(dev, surface, &count, modes)); err != nil {
		return nil, err
	}

	result := make([]core.PresentMode, 0, count)
	for _, m := range modes[:count] {
		result = append(result, core.PresentMode(m))
	}
	return result, nil
}

func extent(e vk.Extent2D) core.Extent2D {
	return core.Extent2D{Width: e.Width, Height: e.Height}
}
