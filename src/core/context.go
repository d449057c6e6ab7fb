// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/cockroachdb/errors"
	"github.com/devblok/ignis/src/gfx"
	"github.com/sirupsen/logrus"
)

// State is the lifecycle stage of a Context.
type State int

// Lifecycle stages, in creation order.
const (
	Uninitialized State = iota
	InstanceReady
	SurfaceBound
	DeviceSelected
	LogicalReady
	ChainReady
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case InstanceReady:
		return "instance ready"
	case SurfaceBound:
		return "surface bound"
	case DeviceSelected:
		return "device selected"
	case LogicalReady:
		return "logical device ready"
	case ChainReady:
		return "chain ready"
	default:
		return "unknown"
	}
}

// DrawFunc draws a frame using the device and chain of a ready Context.
type DrawFunc func(device LogicalDevice, chain PresentationChain) error

// Context owns every object needed to present to a window,
// from the instance down to the swapchain image views.
// It is not safe for concurrent use.
type Context struct {
	driver Driver
	window gfx.Window
	cfg    Configuration
	log    logrus.FieldLogger

	state State

	instance Instance
	surface  SurfaceHandle
	physical Candidate
	device   LogicalDevice
	chain    PresentationChain
}

// CreateContext builds a Context for window, stage by stage. When a stage
// fails, the stages before it are torn down and the error is returned,
// there is no partially built Context. A nil log means the standard logger.
func CreateContext(driver Driver, window gfx.Window, cfg Configuration, log logrus.FieldLogger) (*Context, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Context{
		driver: driver,
		window: window,
		cfg:    cfg,
		log:    log,
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"create instance", c.createInstance},
		{"create surface", c.createSurface},
		{"select physical device", c.selectPhysicalDevice},
		{"create logical device", c.createLogicalDevice},
		{"create presentation chain", c.createPresentationChain},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			c.log.WithError(err).WithField("state", c.state.String()).Error("Context creation failed")
			c.Destroy()
			return nil, errors.Wrap(err, step.name)
		}
	}

	c.log.WithFields(logrus.Fields{
		"device":  c.physical.Properties.Name,
		"images":  len(c.chain.Images),
		"extent":  c.chain.Extent,
		"present": c.chain.PresentMode.String(),
	}).Info("Context ready")
	return c, nil
}

func (c *Context) createInstance() error {
	instance, err := CreateInstance(c.driver, c.cfg.Instance, c.window.VulkanGetInstanceExtensions(), c.log)
	if err != nil {
		return err
	}
	c.instance = instance
	c.state = InstanceReady
	return nil
}

func (c *Context) createSurface() error {
	surface, err := c.driver.CreateSurface(c.instance.Handle, c.window)
	if err != nil {
		return nativeError(err, "window.VulkanCreateSurface()")
	}
	c.surface = surface
	c.state = SurfaceBound
	return nil
}

func (c *Context) selectPhysicalDevice() error {
	candidate, err := SelectPhysicalDevice(c.driver, c.instance.Handle, c.surface, c.cfg.Renderer.RequiredDeviceExtensions(), c.log)
	if err != nil {
		return err
	}
	c.physical = candidate
	c.state = DeviceSelected
	return nil
}

func (c *Context) createLogicalDevice() error {
	device, err := BuildLogicalDevice(c.driver, c.physical.Device, c.physical.Queues, DeviceOptions{
		Extensions: c.cfg.Renderer.RequiredDeviceExtensions(),
		Validation: c.cfg.Instance.Validation,
		Layers:     c.instance.Layers,
	})
	if err != nil {
		return err
	}
	c.device = device
	c.state = LogicalReady
	return nil
}

func (c *Context) createPresentationChain() error {
	chain, err := BuildPresentationChain(c.driver, c.physical.Device, c.device.Handle, c.surface, c.window)
	if err != nil {
		return err
	}
	c.chain = chain
	c.state = ChainReady
	return nil
}

// State returns the current lifecycle stage.
func (c *Context) State() State {
	return c.state
}

// PhysicalDevice returns the selected device, valid from DeviceSelected on.
func (c *Context) PhysicalDevice() Candidate {
	return c.physical
}

// Device returns the logical device and its queues, valid from LogicalReady on.
func (c *Context) Device() LogicalDevice {
	return c.device
}

// Chain returns the presentation chain, valid in ChainReady.
func (c *Context) Chain() PresentationChain {
	return c.chain
}

// Render hands the device and chain to draw. It does not submit or
// present anything by itself.
func (c *Context) Render(draw DrawFunc) error {
	if c.state != ChainReady {
		return errors.Wrapf(ErrInvalidState, "render in state %s", c.state)
	}
	return draw(c.device, c.chain)
}

// Destroy tears down everything that was created, in reverse creation
// order, and leaves the Context Uninitialized. Calling it again does nothing.
func (c *Context) Destroy() {
	if c.state == Uninitialized && c.instance.Handle == 0 {
		return
	}

	c.chain.Destroy(c.driver, c.device.Handle)
	c.chain = PresentationChain{}

	if c.device.Handle != 0 {
		c.driver.DestroyDevice(c.device.Handle)
	}
	c.device = LogicalDevice{}
	c.physical = Candidate{}

	if c.surface != 0 {
		c.driver.DestroySurface(c.instance.Handle, c.surface)
		c.surface = 0
	}

	c.instance.Destroy(c.driver)
	c.instance = Instance{}

	c.state = Uninitialized
	c.log.Debug("Context destroyed")
}

var _ gfx.Releasable = (*Context)(nil)

// Release implements gfx.Releasable
func (c *Context) Release() {
	c.Destroy()
}
