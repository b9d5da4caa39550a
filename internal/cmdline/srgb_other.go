//go:build !windows

package cmdline

const defaultSrgb = false
