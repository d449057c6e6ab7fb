// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"fmt"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/devblok/ignis/src/core"
	"github.com/devblok/ignis/src/gfx"
)

var errInjected = errors.New("injected failure")

type fakeWindow struct {
	extensions    []string
	width, height int32
}

func (w *fakeWindow) VulkanGetInstanceExtensions() []string {
	return w.extensions
}

func (w *fakeWindow) VulkanCreateSurface(interface{}) (unsafe.Pointer, error) {
	return nil, nil
}

func (w *fakeWindow) VulkanGetDrawableSize() (int32, int32) {
	return w.width, w.height
}

func newWindow() *fakeWindow {
	return &fakeWindow{
		extensions: []string{"VK_KHR_surface", "VK_KHR_xlib_surface"},
		width:      800,
		height:     600,
	}
}

type fakeDevice struct {
	properties core.PhysicalDeviceProperties
	features   core.PhysicalDeviceFeatures
	memory     uint64
	extensions []string
	layers     []string
	families   []core.QueueFamilyProperties
	present    map[uint32]bool

	capabilities core.SurfaceCapabilities
	formats      []core.SurfaceFormat
	modes        []core.PresentMode

	extensionsErr error
	supportErr    error
}

func goodDevice(name string) fakeDevice {
	return fakeDevice{
		properties: core.PhysicalDeviceProperties{
			Name:     name,
			Type:     core.DeviceTypeDiscreteGPU,
			VendorID: 0x10de,
			DeviceID: 0x1b80,
		},
		features:   core.PhysicalDeviceFeatures{GeometryShader: true},
		memory:     8 << 30,
		extensions: []string{core.SwapchainExtension},
		families: []core.QueueFamilyProperties{
			{Flags: core.QueueGraphics | core.QueueCompute | core.QueueTransfer, Count: 16},
		},
		present: map[uint32]bool{0: true},
		capabilities: core.SurfaceCapabilities{
			MinImageCount:  2,
			MaxImageCount:  8,
			CurrentExtent:  core.Extent2D{Width: 800, Height: 600},
			MinImageExtent: core.Extent2D{Width: 1, Height: 1},
			MaxImageExtent: core.Extent2D{Width: 4096, Height: 4096},
		},
		formats: []core.SurfaceFormat{
			{Format: core.FormatB8G8R8A8Unorm, ColorSpace: core.ColorSpaceSRGBNonlinear},
			{Format: core.FormatB8G8R8A8SRGB, ColorSpace: core.ColorSpaceSRGBNonlinear},
		},
		modes: []core.PresentMode{core.PresentModeFIFO, core.PresentModeMailbox},
	}
}

// fakeDriver is an in-memory core.Driver. Physical device handles are the
// index into devices plus one, every created object gets a fresh handle.
type fakeDriver struct {
	layers     []string
	extensions []string
	devices    []fakeDevice
	images     int

	loadErr      error
	instanceErr  error
	messengerErr error
	surfaceErr   error
	enumerateErr error
	deviceErr    error
	swapchainErr error
	imagesErr    error
	viewErrAt    int

	next      uint64
	live      map[uint64]string
	created   []string
	destroyed []string
	queries   int

	instanceInfo  core.InstanceInfo
	deviceInfo    core.DeviceInfo
	swapchainInfo core.SwapchainInfo
	viewInfos     []core.ImageViewInfo
	callback      core.DebugCallback
}

func newDriver(devices ...fakeDevice) *fakeDriver {
	return &fakeDriver{
		layers:     []string{core.KhronosValidationLayer},
		extensions: []string{"VK_KHR_surface", "VK_KHR_get_physical_device_properties2", core.DebugReportExtension},
		devices:    devices,
		images:     3,
		viewErrAt:  -1,
		next:       100,
		live:       map[uint64]string{},
	}
}

func (f *fakeDriver) create(kind string) uint64 {
	f.next++
	f.live[f.next] = kind
	f.created = append(f.created, kind)
	return f.next
}

func (f *fakeDriver) destroy(kind string, h uint64) {
	if f.live[h] != kind {
		panic(fmt.Sprintf("destroying %s %d which is not alive", kind, h))
	}
	delete(f.live, h)
	f.destroyed = append(f.destroyed, kind)
}

func (f *fakeDriver) device(h core.PhysicalDeviceHandle) fakeDevice {
	f.queries++
	return f.devices[h-1]
}

func (f *fakeDriver) Load() error {
	return f.loadErr
}

func (f *fakeDriver) AvailableLayers() ([]string, error) {
	return f.layers, nil
}

func (f *fakeDriver) AvailableExtensions() ([]string, error) {
	return f.extensions, nil
}

func (f *fakeDriver) CreateInstance(info core.InstanceInfo) (core.InstanceHandle, error) {
	if f.instanceErr != nil {
		return 0, f.instanceErr
	}
	f.instanceInfo = info
	return core.InstanceHandle(f.create("instance")), nil
}

func (f *fakeDriver) DestroyInstance(h core.InstanceHandle) {
	f.destroy("instance", uint64(h))
}

func (f *fakeDriver) CreateDebugMessenger(_ core.InstanceHandle, cb core.DebugCallback) (core.MessengerHandle, error) {
	if f.messengerErr != nil {
		return 0, f.messengerErr
	}
	f.callback = cb
	return core.MessengerHandle(f.create("messenger")), nil
}

func (f *fakeDriver) DestroyDebugMessenger(_ core.InstanceHandle, h core.MessengerHandle) {
	f.destroy("messenger", uint64(h))
}

func (f *fakeDriver) CreateSurface(core.InstanceHandle, gfx.Window) (core.SurfaceHandle, error) {
	if f.surfaceErr != nil {
		return 0, f.surfaceErr
	}
	return core.SurfaceHandle(f.create("surface")), nil
}

func (f *fakeDriver) DestroySurface(_ core.InstanceHandle, h core.SurfaceHandle) {
	f.destroy("surface", uint64(h))
}

func (f *fakeDriver) EnumeratePhysicalDevices(core.InstanceHandle) ([]core.PhysicalDeviceHandle, error) {
	if f.enumerateErr != nil {
		return nil, f.enumerateErr
	}
	handles := make([]core.PhysicalDeviceHandle, len(f.devices))
	for i := range f.devices {
		handles[i] = core.PhysicalDeviceHandle(i + 1)
	}
	return handles, nil
}

func (f *fakeDriver) PhysicalDeviceProperties(h core.PhysicalDeviceHandle) core.PhysicalDeviceProperties {
	return f.device(h).properties
}

func (f *fakeDriver) PhysicalDeviceFeatures(h core.PhysicalDeviceHandle) core.PhysicalDeviceFeatures {
	return f.device(h).features
}

func (f *fakeDriver) PhysicalDeviceMemory(h core.PhysicalDeviceHandle) uint64 {
	return f.device(h).memory
}

func (f *fakeDriver) DeviceExtensions(h core.PhysicalDeviceHandle) ([]string, error) {
	d := f.device(h)
	return d.extensions, d.extensionsErr
}

func (f *fakeDriver) DeviceLayers(h core.PhysicalDeviceHandle) ([]string, error) {
	return f.device(h).layers, nil
}

func (f *fakeDriver) QueueFamilyProperties(h core.PhysicalDeviceHandle) []core.QueueFamilyProperties {
	return f.device(h).families
}

func (f *fakeDriver) SurfaceSupport(h core.PhysicalDeviceHandle, family uint32, _ core.SurfaceHandle) (bool, error) {
	d := f.device(h)
	if d.supportErr != nil {
		return false, d.supportErr
	}
	return d.present[family], nil
}

func (f *fakeDriver) SurfaceCapabilities(h core.PhysicalDeviceHandle, _ core.SurfaceHandle) (core.SurfaceCapabilities, error) {
	return f.device(h).capabilities, nil
}

func (f *fakeDriver) SurfaceFormats(h core.PhysicalDeviceHandle, _ core.SurfaceHandle) ([]core.SurfaceFormat, error) {
	return f.device(h).formats, nil
}

func (f *fakeDriver) SurfacePresentModes(h core.PhysicalDeviceHandle, _ core.SurfaceHandle) ([]core.PresentMode, error) {
	return f.device(h).modes, nil
}

func (f *fakeDriver) CreateDevice(_ core.PhysicalDeviceHandle, info core.DeviceInfo) (core.DeviceHandle, error) {
	if f.deviceErr != nil {
		return 0, f.deviceErr
	}
	f.deviceInfo = info
	return core.DeviceHandle(f.create("device")), nil
}

func (f *fakeDriver) DestroyDevice(h core.DeviceHandle) {
	f.destroy("device", uint64(h))
}

func (f *fakeDriver) DeviceQueue(dev core.DeviceHandle, family, index uint32) core.QueueHandle {
	return core.QueueHandle(uint64(dev)<<16 | uint64(family)<<8 | uint64(index))
}

func (f *fakeDriver) CreateSwapchain(_ core.DeviceHandle, info core.SwapchainInfo) (core.SwapchainHandle, error) {
	if f.swapchainErr != nil {
		return 0, f.swapchainErr
	}
	f.swapchainInfo = info
	return core.SwapchainHandle(f.create("swapchain")), nil
}

func (f *fakeDriver) DestroySwapchain(_ core.DeviceHandle, h core.SwapchainHandle) {
	f.destroy("swapchain", uint64(h))
}

func (f *fakeDriver) SwapchainImages(core.DeviceHandle, core.SwapchainHandle) ([]core.ImageHandle, error) {
	if f.imagesErr != nil {
		return nil, f.imagesErr
	}
	images := make([]core.ImageHandle, f.images)
	for i := range images {
		images[i] = core.ImageHandle(1000 + i)
	}
	return images, nil
}

func (f *fakeDriver) CreateImageView(_ core.DeviceHandle, info core.ImageViewInfo) (core.ImageViewHandle, error) {
	if f.viewErrAt == len(f.viewInfos) {
		return 0, errInjected
	}
	f.viewInfos = append(f.viewInfos, info)
	return core.ImageViewHandle(f.create("image view")), nil
}

func (f *fakeDriver) DestroyImageView(_ core.DeviceHandle, h core.ImageViewHandle) {
	f.destroy("image view", uint64(h))
}
