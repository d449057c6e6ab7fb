// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package vkr implements core.Driver on top of the native Vulkan API.
package vkr

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/devblok/vulkan"

	"github.com/devblok/ignis/src/core"
	"github.com/devblok/ignis/src/gfx"
)

var _ core.Driver = (*Driver)(nil)

// Driver talks to the Vulkan loader. Native objects never leave the package,
// callers only see handles.
type Driver struct {
	procAddr unsafe.Pointer
	handles  *handleTable

	// children are handles owned by a parent handle, forgotten with it
	children map[uint64][]uint64
}

// New creates a driver that resolves entry points through procAddr,
// as returned by sdl.VulkanGetVkGetInstanceProcAddr. With a nil procAddr
// the system loader library is used.
func New(procAddr unsafe.Pointer) *Driver {
	return &Driver{
		procAddr: procAddr,
		handles:  newHandleTable(),
		children: make(map[uint64][]uint64),
	}
}

// Load implements core.Loader
func (d *Driver) Load() error {
	if d.procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return errors.Wrap(err, "vk.SetDefaultGetInstanceProcAddr()")
		}
	} else {
		vk.SetGetInstanceProcAddr(d.procAddr)
	}
	if err := vk.Init(); err != nil {
		return errors.Wrap(err, "vk.Init()")
	}
	return nil
}

// AvailableLayers implements core.Loader
func (d *Driver) AvailableLayers() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, props)); err != nil {
		return nil, err
	}
	return layerNames(props[:count]), nil
}

// AvailableExtensions implements core.Loader
func (d *Driver) AvailableExtensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, props)); err != nil {
		return nil, err
	}
	return extensionNames(props[:count]), nil
}

// CreateInstance implements core.Loader
func (d *Driver) CreateInstance(info core.InstanceInfo) (core.InstanceHandle, error) {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(1, 0, 0),
		ApplicationVersion: info.ApplicationVersion,
		PApplicationName:   safeString(info.ApplicationName),
		EngineVersion:      info.EngineVersion,
		PEngineName:        safeString(info.EngineName),
	}
	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(info.Extensions)),
		PpEnabledExtensionNames: safeStrings(info.Extensions),
		EnabledLayerCount:       uint32(len(info.Layers)),
		PpEnabledLayerNames:     safeStrings(info.Layers),
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&createInfo, nil, &instance)); err != nil {
		return 0, err
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return 0, errors.Wrap(err, "vk.InitInstance()")
	}
	return core.InstanceHandle(d.handles.put(instance)), nil
}

// DestroyInstance implements core.Driver
func (d *Driver) DestroyInstance(h core.InstanceHandle) {
	if instance, ok := d.handles.drop(uint64(h)).(vk.Instance); ok {
		vk.DestroyInstance(instance, nil)
	}
}

// CreateSurface implements core.Driver
func (d *Driver) CreateSurface(h core.InstanceHandle, window gfx.Window) (core.SurfaceHandle, error) {
	ptr, err := window.VulkanCreateSurface(d.instance(h))
	if err != nil {
		return 0, err
	}
	surface := vk.SurfaceFromPointer(uintptr(ptr))
	return core.SurfaceHandle(d.handles.put(surface)), nil
}

// DestroySurface implements core.Driver
func (d *Driver) DestroySurface(h core.InstanceHandle, s core.SurfaceHandle) {
	if surface, ok := d.handles.drop(uint64(s)).(vk.Surface); ok {
		vk.DestroySurface(d.instance(h), surface, nil)
	}
}

// EnumeratePhysicalDevices implements core.Driver
func (d *Driver) EnumeratePhysicalDevices(h core.InstanceHandle) ([]core.PhysicalDeviceHandle, error) {
	instance := d.instance(h)

	var count uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &count, nil)); err != nil {
		return nil, err
	}
	devices := make([]vk.PhysicalDevice, count)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &count, devices)); err != nil {
		return nil, err
	}

	handles := make([]core.PhysicalDeviceHandle, 0, count)
	for _, dev := range devices[:count] {
		handles = append(handles, core.PhysicalDeviceHandle(d.handles.put(dev)))
	}
	return handles, nil
}

// CreateDevice implements core.Driver
func (d *Driver) CreateDevice(h core.PhysicalDeviceHandle, info core.DeviceInfo) (core.DeviceHandle, error) {
	queues := make([]vk.DeviceQueueCreateInfo, 0, len(info.Queues))
	for _, q := range info.Queues {
		queues = append(queues, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: q.Family,
			QueueCount:       uint32(len(q.Priorities)),
			PQueuePriorities: q.Priorities,
		})
	}

	createInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queues)),
		PQueueCreateInfos:       queues,
		EnabledExtensionCount:   uint32(len(info.Extensions)),
		PpEnabledExtensionNames: safeStrings(info.Extensions),
		EnabledLayerCount:       uint32(len(info.Layers)),
		PpEnabledLayerNames:     safeStrings(info.Layers),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
	}

	var device vk.Device
	if err := vk.Error(vk.CreateDevice(d.physicalDevice(h), &createInfo, nil, &device)); err != nil {
		return 0, err
	}
	return core.DeviceHandle(d.handles.put(device)), nil
}

// DestroyDevice implements core.Driver
func (d *Driver) DestroyDevice(h core.DeviceHandle) {
	d.dropChildren(uint64(h))
	if device, ok := d.handles.drop(uint64(h)).(vk.Device); ok {
		vk.DeviceWaitIdle(device)
		vk.DestroyDevice(device, nil)
	}
}

// DeviceQueue implements core.Driver
func (d *Driver) DeviceQueue(h core.DeviceHandle, family, index uint32) core.QueueHandle {
	var queue vk.Queue
	vk.GetDeviceQueue(d.device(h), family, index, &queue)
	return core.QueueHandle(d.adopt(uint64(h), queue))
}

// CreateSwapchain implements core.Driver
func (d *Driver) CreateSwapchain(h core.DeviceHandle, info core.SwapchainInfo) (core.SwapchainHandle, error) {
	var oldSwapchain vk.Swapchain
	if info.OldSwapchain != 0 {
		oldSwapchain = d.swapchain(info.OldSwapchain)
	}

	createInfo := vk.SwapchainCreateInfo{
		SType:           vk.StructureTypeSwapchainCreateInfo,
		Surface:         d.surface(info.Surface),
		MinImageCount:   info.MinImageCount,
		ImageFormat:     vk.Format(info.Format),
		ImageColorSpace: vk.ColorSpace(info.ColorSpace),
		ImageExtent: vk.Extent2D{
			Width:  info.Extent.Width,
			Height: info.Extent.Height,
		},
		ImageArrayLayers:      info.ArrayLayers,
		ImageUsage:            vk.ImageUsageFlags(info.Usage),
		ImageSharingMode:      vk.SharingMode(info.SharingMode),
		QueueFamilyIndexCount: uint32(len(info.QueueFamilyIndices)),
		PQueueFamilyIndices:   info.QueueFamilyIndices,
		PreTransform:          vk.SurfaceTransformFlagBits(info.PreTransform),
		CompositeAlpha:        vk.CompositeAlphaFlagBits(info.CompositeAlpha),
		PresentMode:           vk.PresentMode(info.PresentMode),
		Clipped:               bool32(info.Clipped),
		OldSwapchain:          oldSwapchain,
	}

	var swapchain vk.Swapchain
	if err := vk.Error(vk.CreateSwapchain(d.device(h), &createInfo, nil, &swapchain)); err != nil {
		return 0, err
	}
	return core.SwapchainHandle(d.handles.put(swapchain)), nil
}

// DestroySwapchain implements core.Driver
func (d *Driver) DestroySwapchain(h core.DeviceHandle, s core.SwapchainHandle) {
	d.dropChildren(uint64(s))
	if swapchain, ok := d.handles.drop(uint64(s)).(vk.Swapchain); ok {
		vk.DestroySwapchain(d.device(h), swapchain, nil)
	}
}

// SwapchainImages implements core.Driver
func (d *Driver) SwapchainImages(h core.DeviceHandle, s core.SwapchainHandle) ([]core.ImageHandle, error) {
	device, swapchain := d.device(h), d.swapchain(s)

	var count uint32
	if err := vk.Error(vk.GetSwapchainImages(device, swapchain, &count, nil)); err != nil {
		return nil, err
	}
	images := make([]vk.Image, count)
	if err := vk.Error(vk.GetSwapchainImages(device, swapchain, &count, images)); err != nil {
		return nil, err
	}

	handles := make([]core.ImageHandle, 0, count)
	for _, image := range images[:count] {
		handles = append(handles, core.ImageHandle(d.adopt(uint64(s), image)))
	}
	return handles, nil
}

// CreateImageView implements core.Driver
func (d *Driver) CreateImageView(h core.DeviceHandle, info core.ImageViewInfo) (core.ImageViewHandle, error) {
	createInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    d.image(info.Image),
		ViewType: vk.ImageViewType(info.ViewType),
		Format:   vk.Format(info.Format),
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzle(info.Components.R),
			G: vk.ComponentSwizzle(info.Components.G),
			B: vk.ComponentSwizzle(info.Components.B),
			A: vk.ComponentSwizzle(info.Components.A),
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(info.SubresourceRange.AspectMask),
			BaseMipLevel:   info.SubresourceRange.BaseMipLevel,
			LevelCount:     info.SubresourceRange.LevelCount,
			BaseArrayLayer: info.SubresourceRange.BaseArrayLayer,
			LayerCount:     info.SubresourceRange.LayerCount,
		},
	}

	var view vk.ImageView
	if err := vk.Error(vk.CreateImageView(d.device(h), &createInfo, nil, &view)); err != nil {
		return 0, err
	}
	return core.ImageViewHandle(d.handles.put(view)), nil
}

// DestroyImageView implements core.Driver
func (d *Driver) DestroyImageView(h core.DeviceHandle, v core.ImageViewHandle) {
	if view, ok := d.handles.drop(uint64(v)).(vk.ImageView); ok {
		vk.DestroyImageView(d.device(h), view, nil)
	}
}

// adopt registers obj as owned by parent.
func (d *Driver) adopt(parent uint64, obj interface{}) uint64 {
	id := d.handles.put(obj)
	for _, child := range d.children[parent] {
		if child == id {
			return id
		}
	}
	d.children[parent] = append(d.children[parent], id)
	return id
}

func (d *Driver) dropChildren(parent uint64) {
	for _, child := range d.children[parent] {
		d.handles.drop(child)
	}
	delete(d.children, parent)
}

func (d *Driver) instance(h core.InstanceHandle) vk.Instance {
	instance, _ := d.handles.get(uint64(h)).(vk.Instance)
	return instance
}

func (d *Driver) physicalDevice(h core.PhysicalDeviceHandle) vk.PhysicalDevice {
	dev, _ := d.handles.get(uint64(h)).(vk.PhysicalDevice)
	return dev
}

func (d *Driver) surface(h core.SurfaceHandle) vk.Surface {
	surface, _ := d.handles.get(uint64(h)).(vk.Surface)
	return surface
}

func (d *Driver) device(h core.DeviceHandle) vk.Device {
	device, _ := d.handles.get(uint64(h)).(vk.Device)
	return device
}

func (d *Driver) swapchain(h core.SwapchainHandle) vk.Swapchain {
	swapchain, _ := d.handles.get(uint64(h)).(vk.Swapchain)
	return swapchain
}

func (d *Driver) image(h core.ImageHandle) vk.Image {
	image, _ := d.handles.get(uint64(h)).(vk.Image)
	return image
}
