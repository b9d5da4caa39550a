//go:build debug

package panics

const debugBuild = true
