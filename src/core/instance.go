// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Instance is a connection to the API along with its debug messenger,
// which is only there when validation is enabled.
type Instance struct {
	Handle     InstanceHandle
	Messenger  MessengerHandle
	Extensions []string
	Layers     []string
}

// CreateInstance loads the API and creates an instance that can present to a
// window needing windowExtensions. With validation enabled the validation
// layer has to be available, it is enabled together with the debug report
// extension and messages are forwarded to log. Configured extensions and the
// debug report extension are checked against what the loader offers, the
// window extensions are trusted as reported by the window system.
func CreateInstance(d Driver, cfg InstanceConfiguration, windowExtensions []string, log logrus.FieldLogger) (Instance, error) {
	if err := d.Load(); err != nil {
		return Instance{}, withKind(errors.Wrap(err, "vk.Init()"), ErrLoaderFailure)
	}

	extensions := append([]string{}, windowExtensions...)
	for _, ext := range cfg.Extensions {
		if !containsString(extensions, ext) {
			extensions = append(extensions, ext)
		}
	}

	var layers []string
	if cfg.Validation {
		available, err := d.AvailableLayers()
		if err != nil {
			return Instance{}, nativeError(err, "vk.EnumerateInstanceLayerProperties()")
		}
		if !containsString(available, cfg.ValidationLayer) {
			return Instance{}, errors.Wrapf(ErrValidationLayerUnavailable, "%s", cfg.ValidationLayer)
		}
		layers = []string{cfg.ValidationLayer}
		if !containsString(extensions, DebugReportExtension) {
			extensions = append(extensions, DebugReportExtension)
		}
	}

	required := append([]string{}, cfg.Extensions...)
	if cfg.Validation {
		required = append(required, DebugReportExtension)
	}
	if len(required) > 0 {
		available, err := d.AvailableExtensions()
		if err != nil {
			return Instance{}, nativeError(err, "vk.EnumerateInstanceExtensionProperties()")
		}
		if missing := missingNames(required, available); len(missing) > 0 {
			return Instance{}, errors.Wrapf(ErrExtensionUnavailable, "%s", strings.Join(missing, ", "))
		}
	}

	handle, err := d.CreateInstance(InstanceInfo{
		ApplicationName:    cfg.ApplicationName,
		ApplicationVersion: MakeVersion(1, 0, 0),
		EngineName:         cfg.EngineName,
		EngineVersion:      MakeVersion(1, 0, 0),
		Extensions:         extensions,
		Layers:             layers,
	})
	if err != nil {
		return Instance{}, nativeError(err, "vk.CreateInstance()")
	}

	instance := Instance{
		Handle:     handle,
		Extensions: extensions,
		Layers:     layers,
	}
	if !cfg.Validation {
		return instance, nil
	}

	messenger, err := d.CreateDebugMessenger(handle, debugLogger(log))
	if err != nil {
		d.DestroyInstance(handle)
		return Instance{}, nativeError(err, "vk.CreateDebugReportCallback()")
	}
	instance.Messenger = messenger
	return instance, nil
}

// Destroy removes the debug messenger before the instance itself.
func (i *Instance) Destroy(d Driver) {
	if i.Messenger != 0 {
		d.DestroyDebugMessenger(i.Handle, i.Messenger)
		i.Messenger = 0
	}
	if i.Handle != 0 {
		d.DestroyInstance(i.Handle)
		i.Handle = 0
	}
}

func debugLogger(log logrus.FieldLogger) DebugCallback {
	return func(msg DebugMessage) {
		entry := log.WithFields(logrus.Fields{
			"layer": msg.Layer,
			"code":  msg.Code,
		})
		switch msg.Severity {
		case DebugSeverityError:
			entry.Error(msg.Message)
		case DebugSeverityWarning, DebugSeverityPerformance:
			entry.Warn(msg.Message)
		case DebugSeverityInfo:
			entry.Info(msg.Message)
		default:
			entry.Debug(msg.Message)
		}
	}
}
