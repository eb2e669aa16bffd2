//go:build !windows

package main

import (
	"os"
	"syscall"
)

// terminationSignals trigger a graceful shutdown. SIGTERM is what systemd and
// container runtimes send on stop.
var terminationSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
