// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"unsafe"

	vk "github.com/devblok/vulkan"

	"github.com/devblok/ignis/src/core"
)

const allDebugReportFlags = vk.DebugReportInformationBit |
	vk.DebugReportWarningBit |
	vk.DebugReportPerformanceWarningBit |
	vk.DebugReportErrorBit |
	vk.DebugReportDebugBit

// CreateDebugMessenger implements core.Driver with a debug report callback
// subscribed to every severity.
func (d *Driver) CreateDebugMessenger(h core.InstanceHandle, cb core.DebugCallback) (core.MessengerHandle, error) {
	createInfo := vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(allDebugReportFlags),
		PfnCallback: func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint, location uint, messageCode int32, layerPrefix string, message string, userData unsafe.Pointer) vk.Bool32 {
			cb(core.DebugMessage{
				Severity: severity(flags),
				Layer:    layerPrefix,
				Code:     messageCode,
				Message:  message,
			})
			return vk.False
		},
	}

	var callback vk.DebugReportCallback
	if err := vk.Error(vk.CreateDebugReportCallback(d.instance(h), &createInfo, nil, &callback)); err != nil {
		return 0, err
	}
	return core.MessengerHandle(d.handles.put(callback)), nil
}

// DestroyDebugMessenger implements core.Driver
func (d *Driver) DestroyDebugMessenger(h core.InstanceHandle, m core.MessengerHandle) {
	if callback, ok := d.handles.drop(uint64(m)).(vk.DebugReportCallback); ok {
		vk.DestroyDebugReportCallback(d.instance(h), callback, nil)
	}
}

func severity(flags vk.DebugReportFlags) core.DebugSeverity {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return core.DebugSeverityError
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		return core.DebugSeverityWarning
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		return core.DebugSeverityPerformance
	case flags&vk.DebugReportFlags(vk.DebugReportInformationBit) != 0:
		return core.DebugSeverityInfo
	default:
		return core.DebugSeverityDebug
	}
}
