package registry

// systemCommands returns the power-action table for one OS. Shutdown,
// restart, and reboot carry the 5-second grace period on Windows; the
// pre-announcement in the dispatcher depends on it.
func systemCommands(goos string) map[string][]string {
	switch goos {
	case "windows":
		return map[string][]string{
			"shutdown":  {"shutdown", "/s", "/t", "5"},
			"restart":   {"shutdown", "/r", "/t", "5"},
			"reboot":    {"shutdown", "/r", "/t", "5"},
			"sleep":     {"rundll32.exe", "powrprof.dll,SetSuspendState", "0,1,0"},
			"hibernate": {"shutdown", "/h"},
			"logout":    {"shutdown", "-l"},
			"lock":      {"rundll32.exe", "user32.dll,LockWorkStation"},
		}
	case "darwin":
		return map[string][]string{
			"shutdown":  {"osascript", "-e", `tell app "System Events" to shut down`},
			"restart":   {"osascript", "-e", `tell app "System Events" to restart`},
			"reboot":    {"osascript", "-e", `tell app "System Events" to restart`},
			"sleep":     {"pmset", "sleepnow"},
			"hibernate": {"pmset", "sleepnow"},
			"logout":    {"osascript", "-e", `tell app "System Events" to log out`},
			"lock":      {"pmset", "displaysleepnow"},
		}
	default:
		return map[string][]string{
			"shutdown":  {"systemctl", "poweroff"},
			"restart":   {"systemctl", "reboot"},
			"reboot":    {"systemctl", "reboot"},
			"sleep":     {"systemctl", "suspend"},
			"hibernate": {"systemctl", "hibernate"},
			"logout":    {"gnome-session-quit", "--no-prompt"},
			"lock":      {"loginctl", "lock-session"},
		}
	}
}
