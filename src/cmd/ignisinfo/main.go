// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/pierrec/lz4"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/ignis/src/core"
	"github.com/devblok/ignis/src/gfx/vkr"
)

var (
	output     = flag.String("o", "", "Write the report to a file instead of stdout")
	compress   = flag.Bool("z", false, "Compress the report with lz4")
	validation = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
)

func main() {
	flag.Parse()

	cfg, err := core.LoadConfiguration(nil)
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if *validation {
		cfg.Instance.Validation = true
	}

	if err := report(cfg); err != nil {
		log.WithError(err).Fatal("Device report failed")
	}
}

func report(cfg core.Configuration) error {
	driver := vkr.New(nil)
	instance, err := core.CreateInstance(driver, cfg.Instance, nil, log.StandardLogger())
	if err != nil {
		return err
	}
	defer instance.Destroy(driver)

	devices, err := core.DescribePhysicalDevices(driver, instance.Handle, cfg.Renderer.RequiredDeviceExtensions())
	if err != nil {
		return err
	}

	if *output == "" {
		return writeReport(os.Stdout, devices, *compress)
	}
	return writeReportFile(*output, devices, *compress)
}

// writeReportFile writes the report to path. A failed close is reported
// when the write itself succeeded, the data may not have reached the disk.
func writeReportFile(path string, devices []core.PhysicalDeviceInfo, compressed bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeReport(f, devices, compressed)
}

func writeReport(w io.Writer, devices []core.PhysicalDeviceInfo, compressed bool) error {
	if !compressed {
		return json.NewEncoder(w).Encode(devices)
	}
	zw := lz4.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(devices); err != nil {
		return err
	}
	return zw.Close()
}
