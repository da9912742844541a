package installer

// Platform is the closed set of host systems the installer knows about.
type Platform int

const (
	Unsupported Platform = iota
	Windows
	Linux
	MacOS
)

// Detect maps a runtime.GOOS value to a Platform.
func Detect(goos string) Platform {
	switch goos {
	case "windows":
		return Windows
	case "linux":
		return Linux
	case "darwin":
		return MacOS
	default:
		return Unsupported
	}
}

func (p Platform) String() string {
	switch p {
	case Windows:
		return "windows"
	case Linux:
		return "linux"
	case MacOS:
		return "macos"
	default:
		return "unsupported"
	}
}

// Script is the install script for a platform and the interpreter that runs it.
type Script struct {
	Name  string
	Shell string
	// Args precede the script path on the interpreter's command line.
	Args []string
}

// Script returns the install script for p.
func (p Platform) Script() (Script, bool) {
	switch p {
	case Windows:
		return Script{
			Name:  "install.ps1",
			Shell: "powershell.exe",
			Args:  []string{"-ExecutionPolicy", "Bypass", "-File"},
		}, true
	case Linux, MacOS:
		return Script{Name: "install.sh", Shell: "bash"}, true
	default:
		return Script{}, false
	}
}

// Lookup returns the command that locates binary on the PATH.
func (p Platform) Lookup(binary string) Command {
	if p == Windows {
		return Command{Name: "where", Args: []string{binary}}
	}
	return Command{Name: "which", Args: []string{binary}}
}
