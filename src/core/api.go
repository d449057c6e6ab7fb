// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "github.com/devblok/ignis/src/gfx"

// Native handles. Every handle is represented by a uint64, zero
// being the null handle that was never created.
type (
	InstanceHandle       uint64
	MessengerHandle      uint64
	SurfaceHandle        uint64
	PhysicalDeviceHandle uint64
	DeviceHandle         uint64
	QueueHandle          uint64
	SwapchainHandle      uint64
	ImageHandle          uint64
	ImageViewHandle      uint64
)

// DeviceType is the class of a physical device.
type DeviceType uint32

// Physical device classes.
const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeIntegratedGPU:
		return "integrated GPU"
	case DeviceTypeDiscreteGPU:
		return "discrete GPU"
	case DeviceTypeVirtualGPU:
		return "virtual GPU"
	case DeviceTypeCPU:
		return "CPU"
	default:
		return "other"
	}
}

// QueueFlags describe the capabilities of a queue family.
type QueueFlags uint32

// Queue family capability bits.
const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

// Format is an image format.
type Format uint32

// Formats the context knows by name.
const (
	FormatUndefined     Format = 0
	FormatR8G8B8A8Unorm Format = 37
	FormatR8G8B8A8SRGB  Format = 43
	FormatB8G8R8A8Unorm Format = 44
	FormatB8G8R8A8SRGB  Format = 50
)

// ColorSpace is the color space of a presentable image.
type ColorSpace uint32

// ColorSpaceSRGBNonlinear is the standard non-linear sRGB color space.
const ColorSpaceSRGBNonlinear ColorSpace = 0

// PresentMode governs how images are handed over to the display.
type PresentMode uint32

// Present modes.
const (
	PresentModeImmediate PresentMode = iota
	PresentModeMailbox
	PresentModeFIFO
	PresentModeFIFORelaxed
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeImmediate:
		return "immediate"
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeFIFO:
		return "fifo"
	case PresentModeFIFORelaxed:
		return "fifo relaxed"
	default:
		return "unknown"
	}
}

// SharingMode decides if swapchain images are owned by one
// queue family at a time or shared between several.
type SharingMode uint32

// Sharing modes.
const (
	SharingModeExclusive SharingMode = iota
	SharingModeConcurrent
)

// Flags used when creating swapchains and image views.
type (
	SurfaceTransform uint32
	CompositeAlpha   uint32
	ImageUsage       uint32
	ImageAspect      uint32
	ImageViewType    uint32
	ComponentSwizzle uint32
)

// Fixed values used by the presentation chain.
const (
	CompositeAlphaOpaque      CompositeAlpha   = 0x1
	ImageUsageColorAttachment ImageUsage       = 0x10
	ImageAspectColor          ImageAspect      = 0x1
	ImageViewType2D           ImageViewType    = 1
	ComponentSwizzleIdentity  ComponentSwizzle = 0
)

// Extent2D is a size in pixels.
type Extent2D struct {
	Width  uint32
	Height uint32
}

// PhysicalDeviceProperties are the identifying properties of a device.
type PhysicalDeviceProperties struct {
	Name          string
	Type          DeviceType
	VendorID      uint32
	DeviceID      uint32
	DriverVersion uint32
	APIVersion    uint32
}

// PhysicalDeviceFeatures lists the optional hardware features
// the context cares about.
type PhysicalDeviceFeatures struct {
	GeometryShader bool
}

// QueueFamilyProperties describes one queue family of a device.
type QueueFamilyProperties struct {
	Flags QueueFlags
	Count uint32
}

// SurfaceCapabilities are the surface limits reported for a device.
type SurfaceCapabilities struct {
	MinImageCount    uint32
	MaxImageCount    uint32
	CurrentExtent    Extent2D
	MinImageExtent   Extent2D
	MaxImageExtent   Extent2D
	CurrentTransform SurfaceTransform
}

// SurfaceFormat pairs an image format with its color space.
type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

// InstanceInfo describes the instance to create.
type InstanceInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	Extensions         []string
	Layers             []string
}

// DeviceQueueInfo requests queues from a single family.
type DeviceQueueInfo struct {
	Family     uint32
	Priorities []float32
}

// DeviceInfo describes the logical device to create.
type DeviceInfo struct {
	Queues     []DeviceQueueInfo
	Extensions []string
	Layers     []string
}

// SwapchainInfo describes the swapchain to create.
type SwapchainInfo struct {
	Surface            SurfaceHandle
	MinImageCount      uint32
	Format             Format
	ColorSpace         ColorSpace
	Extent             Extent2D
	ArrayLayers        uint32
	Usage              ImageUsage
	SharingMode        SharingMode
	QueueFamilyIndices []uint32
	PreTransform       SurfaceTransform
	CompositeAlpha     CompositeAlpha
	PresentMode        PresentMode
	Clipped            bool
	OldSwapchain       SwapchainHandle
}

// ComponentMapping remaps the color channels of an image view.
type ComponentMapping struct {
	R, G, B, A ComponentSwizzle
}

// ImageSubresourceRange selects the part of an image a view covers.
type ImageSubresourceRange struct {
	AspectMask     ImageAspect
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// ImageViewInfo describes an image view to create.
type ImageViewInfo struct {
	Image            ImageHandle
	ViewType         ImageViewType
	Format           Format
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
}

// DebugSeverity is the severity of a validation message.
type DebugSeverity uint32

// Validation message severities.
const (
	DebugSeverityDebug DebugSeverity = iota
	DebugSeverityInfo
	DebugSeverityWarning
	DebugSeverityPerformance
	DebugSeverityError
)

// DebugMessage is a message emitted by the validation layers.
type DebugMessage struct {
	Severity DebugSeverity
	Layer    string
	Code     int32
	Message  string
}

// DebugCallback receives validation messages.
type DebugCallback func(DebugMessage)

// Loader is the part of the device API available before an instance exists.
type Loader interface {

	// Load resolves the API entry points.
	Load() error

	// AvailableLayers lists the instance layers that can be enabled.
	AvailableLayers() ([]string, error)

	// AvailableExtensions lists the instance extensions that can be enabled.
	AvailableExtensions() ([]string, error)

	// CreateInstance connects to the API.
	CreateInstance(info InstanceInfo) (InstanceHandle, error)
}

// PhysicalDeviceQuerier answers capability questions about a physical device.
// None of its methods create anything.
type PhysicalDeviceQuerier interface {
	PhysicalDeviceProperties(PhysicalDeviceHandle) PhysicalDeviceProperties
	PhysicalDeviceFeatures(PhysicalDeviceHandle) PhysicalDeviceFeatures

	// PhysicalDeviceMemory returns the total size of all memory heaps.
	PhysicalDeviceMemory(PhysicalDeviceHandle) uint64

	DeviceExtensions(PhysicalDeviceHandle) ([]string, error)
	DeviceLayers(PhysicalDeviceHandle) ([]string, error)
	QueueFamilyProperties(PhysicalDeviceHandle) []QueueFamilyProperties

	SurfaceSupport(dev PhysicalDeviceHandle, family uint32, surface SurfaceHandle) (bool, error)
	SurfaceCapabilities(PhysicalDeviceHandle, SurfaceHandle) (SurfaceCapabilities, error)
	SurfaceFormats(PhysicalDeviceHandle, SurfaceHandle) ([]SurfaceFormat, error)
	SurfacePresentModes(PhysicalDeviceHandle, SurfaceHandle) ([]PresentMode, error)
}

// Driver is the full device API the context is built against.
// The native implementation lives in package vkr, tests use fakes.
type Driver interface {
	Loader
	PhysicalDeviceQuerier

	DestroyInstance(InstanceHandle)
	CreateDebugMessenger(InstanceHandle, DebugCallback) (MessengerHandle, error)
	DestroyDebugMessenger(InstanceHandle, MessengerHandle)
	CreateSurface(InstanceHandle, gfx.Window) (SurfaceHandle, error)
	DestroySurface(InstanceHandle, SurfaceHandle)
	EnumeratePhysicalDevices(InstanceHandle) ([]PhysicalDeviceHandle, error)

	CreateDevice(PhysicalDeviceHandle, DeviceInfo) (DeviceHandle, error)
	DestroyDevice(DeviceHandle)
	DeviceQueue(dev DeviceHandle, family, index uint32) QueueHandle

	CreateSwapchain(DeviceHandle, SwapchainInfo) (SwapchainHandle, error)
	DestroySwapchain(DeviceHandle, SwapchainHandle)
	SwapchainImages(DeviceHandle, SwapchainHandle) ([]ImageHandle, error)
	CreateImageView(DeviceHandle, ImageViewInfo) (ImageViewHandle, error)
	DestroyImageView(DeviceHandle, ImageViewHandle)
}

// MakeVersion packs a version the way the API expects it.
func MakeVersion(major, minor, patch uint32) uint32 {
	return major<<22 | minor<<12 | patch
}
