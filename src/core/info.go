// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// PhysicalDeviceInfo describes a physical device and whether it could
// back a context, judged without a surface.
type PhysicalDeviceInfo struct {
	ID             uint32   `json:"id"`
	VendorID       uint32   `json:"vendorId"`
	DriverVersion  uint32   `json:"driverVersion"`
	APIVersion     uint32   `json:"apiVersion"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Memory         uint64   `json:"memory"`
	GeometryShader bool     `json:"geometryShader"`
	Extensions     []string `json:"extensions"`
	Layers         []string `json:"layers"`

	Suitable bool   `json:"suitable"`
	Reason   string `json:"reason,omitempty"`

	// Invalid is set when the device could not be fully queried
	Invalid bool `json:"invalid,omitempty"`
}

// DescribePhysicalDevices reports on every device of instance.
func DescribePhysicalDevices(d Driver, instance InstanceHandle, requiredExtensions []string) ([]PhysicalDeviceInfo, error) {
	devices, err := d.EnumeratePhysicalDevices(instance)
	if err != nil {
		return nil, nativeError(err, "vk.EnumeratePhysicalDevices()")
	}

	pdi := make([]PhysicalDeviceInfo, len(devices))
	for i, dev := range devices {
		properties := d.PhysicalDeviceProperties(dev)
		features := d.PhysicalDeviceFeatures(dev)
		pdi[i] = PhysicalDeviceInfo{
			ID:             properties.DeviceID,
			VendorID:       properties.VendorID,
			DriverVersion:  properties.DriverVersion,
			APIVersion:     properties.APIVersion,
			Name:           properties.Name,
			Type:           properties.Type.String(),
			Memory:         d.PhysicalDeviceMemory(dev),
			GeometryShader: features.GeometryShader,
		}

		if pdi[i].Extensions, err = d.DeviceExtensions(dev); err != nil {
			pdi[i].Invalid = true
		}
		if pdi[i].Layers, err = d.DeviceLayers(dev); err != nil {
			pdi[i].Invalid = true
		}

		if err := CheckDeviceCapabilities(d, dev, requiredExtensions); err != nil {
			pdi[i].Reason = err.Error()
			continue
		}
		pdi[i].Suitable = true
	}
	return pdi, nil
}
