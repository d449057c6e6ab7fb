// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core brings up a presentation context for a window: it connects to
// the API, binds a surface, picks a physical device, creates the logical
// device with its queues and builds the swapchain with an image view per
// image. Everything goes through a Driver, so the native API can be
// swapped for a fake.
package core
