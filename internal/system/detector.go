package system

import (
	"bufio"
	"bytes"
	"io/fs"
	"runtime"
	"strings"

	"github.com/melih-ucgun/yurt/internal/category"
)

// Platform categories. Detection turns these on or off regardless of what a
// profile asks for.
const (
	Linux   category.Category = "linux"
	MacOS   category.Category = "macos"
	Windows category.Category = "windows"
	WSL     category.Category = "wsl"
	Arch    category.Category = "arch"
	Debian  category.Category = "debian"
	Fedora  category.Category = "fedora"
	Systemd category.Category = "systemd"
)

// PlatformCategories lists every category detection owns.
var PlatformCategories = []category.Category{Linux, MacOS, Windows, WSL, Arch, Debian, Fedora, Systemd}

// Reader is the part of the filesystem detection reads from.
type Reader interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
}

// PathFinder reports whether a command is on PATH.
type PathFinder interface {
	LookPath(name string) bool
}

// Platform is the detected description of the running machine.
type Platform struct {
	OS         string // linux, darwin, windows
	Distro     string // os-release ID: arch, cachyos, ubuntu, fedora
	DistroLike []string
	Version    string
	InitSystem string
	IsWSL      bool

	detected category.Set
	manager  string
	aur      string
}

// Detect analyses the running system. Files that cannot be read are treated
// as absent.
func Detect(fsys Reader, paths PathFinder) *Platform {
	return detect(runtime.GOOS, fsys, paths)
}

func detect(goos string, fsys Reader, paths PathFinder) *Platform {
	p := &Platform{OS: goos}

	if goos == "linux" {
		info := readOSRelease(fsys)
		p.Distro = info["ID"]
		p.Version = info["VERSION_ID"]
		// CachyOS and friends report ID_LIKE="arch"
		p.DistroLike = strings.Fields(info["ID_LIKE"])
		p.IsWSL = detectWSL(fsys)
		p.InitSystem = detectInitSystem(fsys)
	}

	p.detected = p.categories()
	p.manager, p.aur = selectManagers(p, paths)
	return p
}

func (p *Platform) categories() category.Set {
	set := category.NewSet()
	switch p.OS {
	case "linux":
		set.Add(Linux)
	case "darwin":
		set.Add(MacOS)
	case "windows":
		set.Add(Windows)
	}
	if p.IsWSL {
		set.Add(WSL)
	}
	switch {
	case p.isFamily("arch"):
		set.Add(Arch)
	case p.isFamily("debian", "ubuntu"):
		set.Add(Debian)
	case p.isFamily("fedora", "rhel", "centos"):
		set.Add(Fedora)
	}
	if p.InitSystem == "systemd" {
		set.Add(Systemd)
	}
	return set
}

func (p *Platform) isFamily(ids ...string) bool {
	for _, id := range ids {
		if p.Distro == id {
			return true
		}
		for _, like := range p.DistroLike {
			if like == id {
				return true
			}
		}
	}
	return false
}

// DetectedCategories returns the platform categories that hold here.
func (p *Platform) DetectedCategories() []category.Category {
	return p.detected.Sorted()
}

// MustExclude is true for a platform category that does not hold here. Any
// other category is left to the profile.
func (p *Platform) MustExclude(c category.Category) bool {
	for _, pc := range PlatformCategories {
		if pc == c {
			return !p.detected.Has(c)
		}
	}
	return false
}

// PackageManager returns the native package manager command, or "".
func (p *Platform) PackageManager() string { return p.manager }

// AURHelper returns the AUR helper on PATH, or "" when there is none.
func (p *Platform) AURHelper() string { return p.aur }

func (p *Platform) IsWindows() bool { return p.OS == "windows" }

func selectManagers(p *Platform, paths PathFinder) (manager, aur string) {
	switch {
	case p.OS == "darwin":
		manager = "brew"
	case p.OS == "windows":
		manager = "winget"
	case p.detected.Has(Arch):
		manager = "pacman"
		for _, helper := range []string{"paru", "yay"} {
			if paths.LookPath(helper) {
				aur = helper
				break
			}
		}
	case p.detected.Has(Debian):
		manager = "apt"
	case p.detected.Has(Fedora):
		manager = "dnf"
	default:
		// Unknown distro: take whatever is installed.
		for _, m := range []string{"pacman", "apt-get", "dnf"} {
			if paths.LookPath(m) {
				manager = strings.TrimSuffix(m, "-get")
				break
			}
		}
	}
	return manager, aur
}

func readOSRelease(fsys Reader) map[string]string {
	info := make(map[string]string)
	data, err := fsys.ReadFile("/etc/os-release")
	if err != nil {
		return info
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if parts := strings.SplitN(line, "=", 2); len(parts) == 2 {
			info[parts[0]] = strings.Trim(parts[1], "\"'")
		}
	}
	return info
}

func detectWSL(fsys Reader) bool {
	data, err := fsys.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	v := strings.ToLower(string(data))
	return strings.Contains(v, "microsoft") || strings.Contains(v, "wsl")
}
