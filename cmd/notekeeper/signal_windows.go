//go:build windows

package main

import (
	"os"
)

// terminationSignals trigger a graceful shutdown. Only Ctrl+C is delivered on Windows.
var terminationSignals = []os.Signal{os.Interrupt}
