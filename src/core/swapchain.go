// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/cockroachdb/errors"
	"github.com/devblok/ignis/src/gfx"
)

// PresentationChain is a swapchain, its images and one view per image.
// Images are owned by the swapchain, views by the chain.
type PresentationChain struct {
	Handle      SwapchainHandle
	Images      []ImageHandle
	Views       []ImageViewHandle
	Format      Format
	ColorSpace  ColorSpace
	Extent      Extent2D
	PresentMode PresentMode
}

// BuildPresentationChain creates the swapchain for surface and a color view
// for each of its images. Queue families and surface support are queried
// again so the chain matches the window as it is now. On failure everything
// created so far is destroyed again.
func BuildPresentationChain(d Driver, dev PhysicalDeviceHandle, device DeviceHandle, surface SurfaceHandle, window gfx.Window) (PresentationChain, error) {
	indices, err := ResolveQueueFamilies(d, dev, surface)
	if err != nil {
		return PresentationChain{}, err
	}
	support, err := QuerySwapchainSupport(d, dev, surface)
	if err != nil {
		return PresentationChain{}, err
	}

	format := ChooseSurfaceFormat(support.Formats)
	mode := ChoosePresentMode(support.PresentModes)
	width, height := window.VulkanGetDrawableSize()
	extent := ChooseExtent(support.Capabilities, width, height)
	sharing, families := SharingFor(indices)

	info := SwapchainInfo{
		Surface:            surface,
		MinImageCount:      SwapchainImageCount(support.Capabilities),
		Format:             format.Format,
		ColorSpace:         format.ColorSpace,
		Extent:             extent,
		ArrayLayers:        1,
		Usage:              ImageUsageColorAttachment,
		SharingMode:        sharing,
		QueueFamilyIndices: families,
		PreTransform:       support.Capabilities.CurrentTransform,
		CompositeAlpha:     CompositeAlphaOpaque,
		PresentMode:        mode,
		Clipped:            true,
	}

	swapchain, err := d.CreateSwapchain(device, info)
	if err != nil {
		return PresentationChain{}, nativeError(err, "vk.CreateSwapchain()")
	}

	chain := PresentationChain{
		Handle:      swapchain,
		Format:      format.Format,
		ColorSpace:  format.ColorSpace,
		Extent:      extent,
		PresentMode: mode,
	}

	images, err := d.SwapchainImages(device, swapchain)
	if err != nil {
		chain.Destroy(d, device)
		return PresentationChain{}, nativeError(err, "vk.GetSwapchainImages()")
	}
	chain.Images = images

	for i, image := range images {
		view, err := d.CreateImageView(device, colorViewInfo(image, format.Format))
		if err != nil {
			chain.Destroy(d, device)
			return PresentationChain{}, errors.Wrapf(nativeError(err, "vk.CreateImageView()"), "image %d", i)
		}
		chain.Views = append(chain.Views, view)
	}

	return chain, nil
}

func colorViewInfo(image ImageHandle, format Format) ImageViewInfo {
	return ImageViewInfo{
		Image:    image,
		ViewType: ImageViewType2D,
		Format:   format,
		Components: ComponentMapping{
			R: ComponentSwizzleIdentity,
			G: ComponentSwizzleIdentity,
			B: ComponentSwizzleIdentity,
			A: ComponentSwizzleIdentity,
		},
		SubresourceRange: ImageSubresourceRange{
			AspectMask:     ImageAspectColor,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}
}

// Destroy releases the views, then the swapchain. Images go with the swapchain.
// Calling it again is harmless.
func (c *PresentationChain) Destroy(d Driver, device DeviceHandle) {
	for _, view := range c.Views {
		if view != 0 {
			d.DestroyImageView(device, view)
		}
	}
	c.Views = nil
	c.Images = nil

	if c.Handle != 0 {
		d.DestroySwapchain(device, c.Handle)
		c.Handle = 0
	}
}
