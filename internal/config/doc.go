// Package config provides configuration structures and utilities for
// haikufinder. It defines the scan and post options built from CLI flags,
// API credentials loaded from the environment, and the optional
// .haikufinder file with scan defaults and per-artist overrides.
package config
