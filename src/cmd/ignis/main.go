// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"
	"time"

	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/ignis/src/core"
	"github.com/devblok/ignis/src/gfx/vkr"
)

func init() {
	runtime.LockOSThread()
}

// Profiling
var (
	cpuProfile   = flag.String("cpuprof", "", "Profile CPU usage to file")
	traceProfile = flag.String("trace", "", "Trace output for profiling")
	debug        = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
	verbose      = flag.Bool("v", false, "Verbose logging")
)

// StaticResources holds the embedded default configuration
var StaticResources = packr.NewBox("./resources")

func loadConfiguration() core.Configuration {
	defaults, err := StaticResources.FindString("default.env")
	if err != nil {
		log.WithError(err).Fatal("Default configuration missing")
	}
	cfg, err := core.LoadConfiguration(strings.NewReader(defaults))
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if *debug {
		cfg.Instance.Validation = true
	}
	return cfg
}

func newWindow(cfg core.RendererConfiguration) *sdl.Window {
	window, err := sdl.CreateWindow("Ignis",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.ScreenWidth),
		int32(cfg.ScreenHeight),
		sdl.WINDOW_VULKAN)
	if err != nil {
		log.WithError(err).Fatal("Window creation failed")
	}
	return window
}

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}

	if *traceProfile != "" {
		f, err := os.Create(*traceProfile)
		if err != nil {
			panic(err)
		}
		if err := trace.Start(f); err != nil {
			panic(err)
		}
		defer trace.Stop()
	}

	configuration := loadConfiguration()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.WithError(err).Fatal("SDL init failed")
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.WithError(err).Fatal("Vulkan library not loaded")
	}
	defer sdl.VulkanUnloadLibrary()

	sdlWindow := newWindow(configuration.Renderer)
	defer sdlWindow.Destroy()

	driver := vkr.New(sdl.VulkanGetVkGetInstanceProcAddr())
	context, err := core.CreateContext(driver, sdlWindow, configuration, log.StandardLogger())
	if err != nil {
		log.WithError(err).Fatal("Graphics context not created")
	}
	defer context.Destroy()

	timeService := core.NewTime(configuration.Time)
	defer timeService.Stop()

	run(context, timeService)
}

// run drives frames and window events from the same thread
// until the window is closed.
func run(context *core.Context, timeService *core.Time) {
	var frames int
	draw := func(core.LogicalDevice, core.PresentationChain) error {
		frames++
		return nil
	}

	report := time.NewTicker(time.Second)
	defer report.Stop()

	for {
		select {
		case <-timeService.FpsTicker().C:
			if err := context.Render(draw); err != nil {
				log.WithError(err).Error("Render failed")
				return
			}
		case <-report.C:
			log.WithField("fps", frames).Debug("Frame count")
			frames = 0
		case <-timeService.EventTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						return
					}
				case *sdl.QuitEvent:
					return
				}
			}
		}
	}
}
