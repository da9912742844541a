// Package installer installs the zoi binary by fetching and running the
// platform's install script when zoi is not already on the PATH.
package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

const (
	DefaultBinary     = "zoi"
	DefaultScriptBase = "https://gitlab.com/Zillowe/Zillwen/Zusty/Zoi/-/raw/main/app/"
)

// Installer runs the presence check, download and execution steps in order.
type Installer struct {
	Binary   string
	GOOS     string
	Platform Platform
	Runner   CommandRunner
	// Client performs the download. It carries no timeout: cancel ctx instead.
	Client     *http.Client
	ScriptBase string
	TempDir    string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	info *color.Color
	ok   *color.Color
	fail *color.Color
}

// New returns an Installer for goos using the real network, temp directory
// and process runner.
func New(goos string, stdin io.Reader, stdout, stderr io.Writer, noColour bool) *Installer {
	i := &Installer{
		Binary:     DefaultBinary,
		GOOS:       goos,
		Platform:   Detect(goos),
		Runner:     ExecRunner{},
		Client:     &http.Client{},
		ScriptBase: DefaultScriptBase,
		TempDir:    os.TempDir(),
		Stdin:      stdin,
		Stdout:     stdout,
		Stderr:     stderr,
		info:       color.New(color.FgCyan),
		ok:         color.New(color.FgGreen),
		fail:       color.New(color.FgRed),
	}
	if noColour {
		i.info.DisableColor()
		i.ok.DisableColor()
		i.fail.DisableColor()
	}
	return i
}

// Run executes the whole flow and returns the process exit code.
func (i *Installer) Run(ctx context.Context) int {
	if i.Installed(ctx) {
		i.say(i.ok, i.Stdout, "%s is already installed. To upgrade, run '%s upgrade'.", i.Binary, i.Binary)
		return 0
	}
	i.say(i.info, i.Stdout, "%s not found, starting installation.", i.Binary)

	code, err := i.Install(ctx)
	if err != nil {
		i.say(i.fail, i.Stderr, "%v", err)
	}
	return code
}

// Installed reports whether the binary is on the PATH. Any failure of the
// lookup command counts as not installed.
func (i *Installer) Installed(ctx context.Context) bool {
	return i.Runner.Run(ctx, i.Platform.Lookup(i.Binary)) == nil
}

// Install downloads and runs the install script. The returned code mirrors the
// script's exit status; it is 1 whenever err is non-nil.
func (i *Installer) Install(ctx context.Context) (int, error) {
	s, ok := i.Platform.Script()
	if !ok {
		return 1, &UnsupportedPlatformError{GOOS: i.GOOS}
	}

	path, err := i.Download(ctx, s)
	if err != nil {
		return 1, err
	}
	if i.Platform != Windows {
		if err = os.Chmod(path, 0o755); err != nil {
			return 1, err
		}
	}
	return i.Execute(ctx, s, path)
}

// Download streams the script into TempDir and returns its path.
func (i *Installer) Download(ctx context.Context, s Script) (string, error) {
	url := i.ScriptBase + s.Name
	i.say(i.info, i.Stdout, "Downloading %s installer from %s...", i.Binary, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &DownloadFailedError{URL: url, Wrapped: err}
	}
	resp, err := i.Client.Do(req)
	if err != nil {
		return "", &DownloadFailedError{URL: url, Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &DownloadFailedError{URL: url, Reason: resp.Status}
	}

	path := filepath.Join(i.TempDir, s.Name)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	n, err := io.Copy(out, resp.Body)
	if cErr := out.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		return "", &DownloadFailedError{URL: url, Wrapped: err}
	}
	if n == 0 {
		return "", &DownloadFailedError{URL: url, Reason: "empty response body"}
	}

	i.say(i.info, i.Stdout, "Downloaded installer to %s", path)
	return path, nil
}

// Execute runs the script with the platform interpreter, passing the wrapper's
// standard streams through.
func (i *Installer) Execute(ctx context.Context, s Script, path string) (int, error) {
	args := append(append([]string{}, s.Args...), path)
	i.say(i.info, i.Stdout, "Running installer with: %s %s", s.Shell, strings.Join(args, " "))

	err := i.Runner.Run(ctx, Command{
		Name:   s.Shell,
		Args:   args,
		Stdin:  i.Stdin,
		Stdout: i.Stdout,
		Stderr: i.Stderr,
	})
	if err == nil {
		i.say(i.ok, i.Stdout, "Installation completed successfully.")
		return 0, nil
	}

	code, ran := exitCode(err)
	if !ran {
		return 1, &InstallerExecFailedError{Shell: s.Shell, Wrapped: err}
	}
	// A child killed by a signal has no exit status.
	if code <= 0 {
		code = 1
	}
	i.say(i.fail, i.Stderr, "Installer exited with code %d", code)
	return code, nil
}

func (i *Installer) say(c *color.Color, w io.Writer, format string, a ...any) {
	_, _ = c.Fprintf(w, format+"\n", a...)
}
