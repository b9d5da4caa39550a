//go:build !debug

package panics

const debugBuild = false
