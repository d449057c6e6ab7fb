// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
)

// Names of extensions and layers the context refers to.
const (
	SwapchainExtension     = "VK_KHR_swapchain"
	DebugReportExtension   = "VK_EXT_debug_report"
	KhronosValidationLayer = "VK_LAYER_KHRONOS_validation"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Instance InstanceConfiguration
	Renderer RendererConfiguration
	Time     TimeConfiguration
}

// InstanceConfiguration is used to configure the API connection
type InstanceConfiguration struct {
	ApplicationName string
	EngineName      string

	// Validation enables the validation layer on the instance and the
	// device, and registers a debug messenger.
	Validation      bool
	ValidationLayer string

	// Extensions are requested in addition to the ones the window needs
	Extensions []string
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	DeviceExtensions []string

	ScreenWidth  uint32
	ScreenHeight uint32
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the window event polling interval in milliseconds
	EventPollDelay int
}

// Environment keys read by LoadConfiguration.
const (
	EnvApplicationName    = "IGNIS_APP_NAME"
	EnvEngineName         = "IGNIS_ENGINE_NAME"
	EnvValidation         = "IGNIS_VALIDATION"
	EnvValidationLayer    = "IGNIS_VALIDATION_LAYER"
	EnvInstanceExtensions = "IGNIS_INSTANCE_EXTENSIONS"
	EnvDeviceExtensions   = "IGNIS_DEVICE_EXTENSIONS"
	EnvScreenWidth        = "IGNIS_SCREEN_WIDTH"
	EnvScreenHeight       = "IGNIS_SCREEN_HEIGHT"
	EnvFramesPerSecond    = "IGNIS_FPS"
	EnvEventPollDelay     = "IGNIS_EVENT_POLL_DELAY"
)

// DefaultConfiguration returns the configuration used when nothing is set.
func DefaultConfiguration() Configuration {
	return Configuration{
		Instance: InstanceConfiguration{
			ApplicationName: "Ignis",
			EngineName:      "Ignis",
			ValidationLayer: KhronosValidationLayer,
		},
		Renderer: RendererConfiguration{
			DeviceExtensions: []string{SwapchainExtension},
			ScreenWidth:      800,
			ScreenHeight:     600,
		},
		Time: TimeConfiguration{
			FramesPerSecond: 60,
			EventPollDelay:  50,
		},
	}
}

// LoadConfiguration builds a Configuration from a dotenv document of defaults,
// overridden by the process environment and a .env file in the working directory.
// A nil defaults reader means DefaultConfiguration is the only base.
func LoadConfiguration(defaults io.Reader) (Configuration, error) {
	base := map[string]string{}
	if defaults != nil {
		parsed, err := godotenv.Parse(defaults)
		if err != nil {
			return Configuration{}, errors.Wrap(err, "parse configuration defaults")
		}
		base = parsed
	}

	get := func(key string) string {
		return envy.Get(key, base[key])
	}

	cfg := DefaultConfiguration()
	if v := get(EnvApplicationName); v != "" {
		cfg.Instance.ApplicationName = v
	}
	if v := get(EnvEngineName); v != "" {
		cfg.Instance.EngineName = v
	}
	if v := get(EnvValidationLayer); v != "" {
		cfg.Instance.ValidationLayer = v
	}
	if v := get(EnvValidation); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Configuration{}, errors.Wrapf(err, "%s", EnvValidation)
		}
		cfg.Instance.Validation = b
	}
	if v := get(EnvInstanceExtensions); v != "" {
		cfg.Instance.Extensions = splitList(v)
	}
	if v := get(EnvDeviceExtensions); v != "" {
		cfg.Renderer.DeviceExtensions = splitList(v)
	}

	uints := []struct {
		key string
		dst *uint32
	}{
		{EnvScreenWidth, &cfg.Renderer.ScreenWidth},
		{EnvScreenHeight, &cfg.Renderer.ScreenHeight},
	}
	for _, u := range uints {
		v := get(u.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return Configuration{}, errors.Wrapf(err, "%s", u.key)
		}
		*u.dst = uint32(n)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvFramesPerSecond, &cfg.Time.FramesPerSecond},
		{EnvEventPollDelay, &cfg.Time.EventPollDelay},
	}
	for _, i := range ints {
		v := get(i.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Configuration{}, errors.Wrapf(err, "%s", i.key)
		}
		if n < 0 {
			return Configuration{}, errors.Newf("%s: must not be negative, got %d", i.key, n)
		}
		*i.dst = n
	}

	return cfg, nil
}

// RequiredDeviceExtensions returns the configured device extensions,
// always including the swapchain extension.
func (r RendererConfiguration) RequiredDeviceExtensions() []string {
	exts := append([]string{}, r.DeviceExtensions...)
	if !containsString(exts, SwapchainExtension) {
		exts = append(exts, SwapchainExtension)
	}
	return exts
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
