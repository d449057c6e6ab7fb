// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "math"

// SwapchainSupport is a snapshot of what a device offers for a surface.
// It goes stale when the window changes size, query it again before use.
type SwapchainSupport struct {
	Capabilities SurfaceCapabilities
	Formats      []SurfaceFormat
	PresentModes []PresentMode
}

// QuerySwapchainSupport takes a fresh snapshot of the surface support of dev.
func QuerySwapchainSupport(d PhysicalDeviceQuerier, dev PhysicalDeviceHandle, surface SurfaceHandle) (SwapchainSupport, error) {
	caps, err := d.SurfaceCapabilities(dev, surface)
	if err != nil {
		return SwapchainSupport{}, nativeError(err, "vk.GetPhysicalDeviceSurfaceCapabilities()")
	}
	formats, err := d.SurfaceFormats(dev, surface)
	if err != nil {
		return SwapchainSupport{}, nativeError(err, "vk.GetPhysicalDeviceSurfaceFormats()")
	}
	modes, err := d.SurfacePresentModes(dev, surface)
	if err != nil {
		return SwapchainSupport{}, nativeError(err, "vk.GetPhysicalDeviceSurfacePresentModes()")
	}
	return SwapchainSupport{
		Capabilities: caps,
		Formats:      formats,
		PresentModes: modes,
	}, nil
}

// Adequate reports whether a chain can be built at all.
func (s SwapchainSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// ChooseSurfaceFormat prefers 8 bit BGRA sRGB in the non-linear sRGB color
// space and falls back to the first format offered.
func ChooseSurfaceFormat(formats []SurfaceFormat) SurfaceFormat {
	for _, f := range formats {
		if f.Format == FormatB8G8R8A8SRGB && f.ColorSpace == ColorSpaceSRGBNonlinear {
			return f
		}
	}
	if len(formats) == 0 {
		return SurfaceFormat{}
	}
	return formats[0]
}

// ChoosePresentMode prefers mailbox and falls back to FIFO,
// which every device has to support.
func ChoosePresentMode(modes []PresentMode) PresentMode {
	for _, m := range modes {
		if m == PresentModeMailbox {
			return m
		}
	}
	return PresentModeFIFO
}

// ChooseExtent uses the current extent of the surface unless the surface lets
// the window decide, in which case the framebuffer size is clamped into the
// supported range one axis at a time.
func ChooseExtent(caps SurfaceCapabilities, width, height int32) Extent2D {
	if caps.CurrentExtent.Width != math.MaxUint32 {
		return caps.CurrentExtent
	}
	return Extent2D{
		Width:  clamp(toUint32(width), caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(toUint32(height), caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// SwapchainImageCount asks for one image over the minimum,
// within the maximum when the surface has one. Zero means no maximum.
func SwapchainImageCount(caps SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount != 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

// SharingFor picks the image sharing mode for the queue families. Images are
// shared concurrently between two distinct families, otherwise owned exclusively
// with no family list.
func SharingFor(indices QueueFamilyIndices) (SharingMode, []uint32) {
	if indices.Graphics != indices.Present {
		return SharingModeConcurrent, []uint32{indices.Graphics, indices.Present}
	}
	return SharingModeExclusive, nil
}

func clamp(v, min, max uint32) uint32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func toUint32(v int32) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
