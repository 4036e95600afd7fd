//go:build !windows

package main

import (
	"os"
	"syscall"
)

// SIGHUP covers a closed terminal tab, which would otherwise leave the
// bundle and scratch directory behind.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
