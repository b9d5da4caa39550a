//go:build !linux && !windows

package app

func platformFixups() {}
