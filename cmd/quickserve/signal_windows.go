//go:build windows

package main

import "os"

// Windows only delivers os.Interrupt through os/signal.
var shutdownSignals = []os.Signal{os.Interrupt}
