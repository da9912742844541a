package main

import (
	"context"
	"os"
	"runtime"

	"github.com/zillowe/zoi-release/internal/fs"
	"github.com/zillowe/zoi-release/internal/installer"
)

// main installs no signal handlers: an interrupt reaches the install script,
// which shares the terminal, and the wrapper ends with it.
func main() {
	noColour := os.Getenv(fs.NoColorEnvVar) != ""
	code := installer.New(runtime.GOOS, os.Stdin, os.Stdout, os.Stderr, noColour).Run(context.Background())
	//nolint:gocritic // os.Exit is intentional
	os.Exit(code)
}
