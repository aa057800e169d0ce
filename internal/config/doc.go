// Package config provides configuration structures and utilities for
// p24harvest. It defines the scrape settings (page range, batching, delays,
// output), the proxy credentials sourced from the environment, and the
// selector profile the field extractor runs with.
package config
