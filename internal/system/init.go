package system

import "strings"

func detectInitSystem(fsys Reader) string {
	// 1. Check PID 1 (most reliable)
	if comm, err := fsys.ReadFile("/proc/1/comm"); err == nil {
		if strings.TrimSpace(string(comm)) == "systemd" {
			return "systemd"
		}
	}

	// 2. Check /run/systemd/system (standard way to check if booted with systemd)
	if _, err := fsys.Stat("/run/systemd/system"); err == nil {
		return "systemd"
	}

	// 3. OpenRC checks
	if _, err := fsys.Stat("/run/openrc"); err == nil {
		return "openrc"
	}

	// 4. SysVinit
	if _, err := fsys.Stat("/etc/init.d"); err == nil {
		return "sysvinit"
	}

	return "unknown"
}
