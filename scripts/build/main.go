// Package main builds the release tools into bin/.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var binaries = []string{"zoi-release", "zoi-install"}

func main() {
	version := releaseVersion()

	ldflags := fmt.Sprintf("-X github.com/zillowe/zoi-release/internal/app.Version=%s", version)

	// Ensure bin directory exists
	if err := os.MkdirAll("bin", 0o755); err != nil {
		fmt.Printf("❌ Failed to create bin directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Building %s...\n", version)
	for _, name := range binaries {
		binaryName := name
		if runtime.GOOS == "windows" {
			binaryName += ".exe"
		}
		outputPath := filepath.Join("bin", binaryName)

		cmd := exec.Command("go", "build", "-ldflags", ldflags, "-o", outputPath, "./cmd/"+name)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			fmt.Printf("❌ Build of %s failed: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("✅ Build complete: %s\n", outputPath)
	}
}

// releaseVersion describes HEAD relative to the nearest release tag, such as
// Prod-Beta-3.2.5-4-g1a2b3c4, or "dev" outside a git checkout.
func releaseVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--match", "*-*-*.*.*", "--always", "--dirty").Output()
	if err != nil {
		return "dev"
	}
	if v := strings.TrimSpace(string(out)); v != "" {
		return v
	}
	return "dev"
}
