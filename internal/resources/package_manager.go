package resources

import (
	"fmt"
	"strings"

	"github.com/melih-ucgun/yurt/internal/core"
)

// PackageManager is the common interface of the package managers.
type PackageManager interface {
	Name() string
	IsInstalled(runner core.Runner, name string) (bool, error)
	Install(runner core.Runner, name string) error
}

// GetPackageManager returns the manager for a command name. sudo prefixes
// commands that need root.
func GetPackageManager(managerName string, sudo bool) (PackageManager, error) {
	switch managerName {
	// System package managers
	case "pacman":
		return &PacmanManager{Sudo: sudo}, nil
	case "apt":
		return &AptManager{Sudo: sudo}, nil
	case "dnf":
		return &DnfManager{Sudo: sudo}, nil
	case "brew":
		return &BrewManager{}, nil
	case "winget":
		return &WingetManager{}, nil

	// AUR helpers ask for root themselves
	case "paru":
		return &ParuManager{}, nil
	case "yay":
		return &YayManager{}, nil

	// Universal formats
	case "flatpak":
		return &FlatpakManager{}, nil

	default:
		return nil, fmt.Errorf("unsupported package manager: %q", managerName)
	}
}

// queryInstalled runs a query that exits 0 when the package is installed and
// non-zero when it is not. Failing to run the query at all is an error.
func queryInstalled(runner core.Runner, name string, args ...string) (bool, error) {
	out, err := runner.CombinedOutput(name, args...)
	if err == nil {
		return true, nil
	}
	if core.ExitCode(err) > 0 {
		return false, nil
	}
	return false, commandError(name, args, out, err)
}

func privileged(sudo bool, name string, args ...string) (string, []string) {
	if !sudo {
		return name, args
	}
	return "sudo", append([]string{name}, args...)
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
