// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gfx defines the contracts between the rendering context
// and the collaborators it does not own.
package gfx

import "unsafe"

// Releasable defines any memory-occupying item that can be freed.
type Releasable interface {

	// Release releases memory occupied by the implementing structure.
	Release()
}

// Window is the platform window a rendering context presents to.
// The method set matches the Vulkan helpers of an SDL2 window, so
// *sdl.Window can be used directly.
type Window interface {

	// VulkanGetInstanceExtensions returns the instance extensions
	// required to create a surface for this window.
	VulkanGetInstanceExtensions() []string

	// VulkanCreateSurface creates a native surface for the given
	// native instance handle and returns it as a raw pointer.
	VulkanCreateSurface(instance interface{}) (unsafe.Pointer, error)

	// VulkanGetDrawableSize returns the current framebuffer size in pixels.
	VulkanGetDrawableSize() (int32, int32)
}
